package main

import (
	"context"
	"flag"
	"os"
	"time"

	"yt-relay/internal/invoker"
)

func main() {
	server := flag.String("server", "http://localhost:8084", "relay base URL")
	videoURL := flag.String("url", "", "YouTube URL or video ID")
	format := flag.String("format", "mp3", "mp3, m4a or mp4")
	quality := flag.String("quality", "", "video quality for mp4, audio bitrate otherwise")
	action := flag.String("action", "download", "download or info")
	open := flag.Bool("open", false, "open the download link in the browser")
	timeout := flag.Duration("timeout", 60*time.Second, "request timeout")
	flag.Parse()

	client := invoker.NewClient(*server, *timeout)
	term := invoker.NewTerminal(os.Stdout, *open)

	client.Run(context.Background(), term, invoker.Input{
		URL:     *videoURL,
		Format:  *format,
		Quality: *quality,
		Action:  *action,
	})
}
