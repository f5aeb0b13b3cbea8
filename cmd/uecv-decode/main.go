// uecv-decode summarizes recorded raw camera messages: one CBOR
// message per file, as captured from the frame stream.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/fxamacker/cbor/v2"
)

const tagMultiDimArray = 40

func main() {
	path := flag.String("path", "", "Path to CBOR file or directory")
	limit := flag.Int("limit", 5, "Max number of frame messages to summarize")
	flag.Parse()

	if *path == "" {
		log.Fatal("missing -path")
	}

	files, err := listFiles(*path)
	if err != nil {
		log.Fatalf("list files: %v", err)
	}

	var frameCount int
	var metaCount int

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("read %s: %v", file, err)
			continue
		}

		msg, err := decodeMessage(data)
		if err != nil {
			log.Printf("decode %s: %v", file, err)
			continue
		}

		switch msg.Type {
		case "frame":
			frameCount++
			if frameCount <= *limit {
				fmt.Printf("frame: %s\n", file)
				fmt.Printf("  timestamp: %v\n", msg.Timestamp)
				fmt.Printf("  color: %s\n", msg.Color)
				fmt.Printf("  depth: %s\n", msg.Depth)
			}
		default:
			metaCount++
			fmt.Printf("%s: %s\n", orUnknown(msg.Type), file)
		}
	}

	fmt.Printf("summary: frame=%d other=%d\n", frameCount, metaCount)
}

type messageSummary struct {
	Type      string
	Timestamp any
	Color     string
	Depth     string
}

func decodeMessage(data []byte) (messageSummary, error) {
	var payload map[string]any
	if err := cbor.Unmarshal(data, &payload); err != nil {
		return messageSummary{}, err
	}
	msgType, _ := payload["type"].(string)
	summary := messageSummary{Type: msgType}
	if msgType == "frame" {
		summary.Timestamp = payload["timestamp"]
		summary.Color = describeArray(payload["color"])
		summary.Depth = describeArray(payload["depth"])
	}
	return summary, nil
}

func describeArray(value any) string {
	tag, ok := value.(cbor.Tag)
	if !ok {
		return fmt.Sprintf("type %T", value)
	}
	if tag.Number != tagMultiDimArray {
		return fmt.Sprintf("tag %d", tag.Number)
	}
	items, ok := tag.Content.([]any)
	if !ok || len(items) != 2 {
		return "invalid multidim"
	}
	dims, ok := items[0].([]any)
	if !ok {
		return "invalid dims"
	}
	dataTag, _ := items[1].(cbor.Tag)
	return fmt.Sprintf("dims %v tag %d", dims, dataTag.Number)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func listFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ".cbor" {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
