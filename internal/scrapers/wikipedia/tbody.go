package wikipedia

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// tableBodyOffsets returns the byte offset of every <tbody> start tag as it
// is written in markup. The html parser adds a <tbody> to each table written
// without one, those do not count towards TableBodyIndex.
func tableBodyOffsets(markup string) ([]int, error) {
	z := html.NewTokenizer(strings.NewReader(markup))

	var offsets []int
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return offsets, nil
			}
			return nil, z.Err()
		}
		// Raw must be read before TagName, which reuses the buffer.
		size := len(z.Raw())
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			name, _ := z.TagName()
			if string(name) == "tbody" {
				offsets = append(offsets, offset)
			}
		}
		offset += size
	}
}
