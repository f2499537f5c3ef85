package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"ZhihuClipper/internal/source"
)

// StdinTarget selects standard input as the snapshot.
const StdinTarget = "-"

// FileLoader reads a saved page from disk or stdin.
type FileLoader struct {
	stdin io.Reader
}

var _ source.Loader = (*FileLoader)(nil)

// NewFileLoader builds a loader; stdin may be nil to use os.Stdin.
func NewFileLoader(stdin io.Reader) *FileLoader {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &FileLoader{stdin: stdin}
}

// Name identifies the loader inside the registry.
func (f *FileLoader) Name() string {
	return "file"
}

// Load parses the file at target, or stdin when target is "-".
func (f *FileLoader) Load(_ context.Context, target string) (*goquery.Document, error) {
	if target == StdinTarget {
		return ParseEncoded(f.stdin)
	}

	file, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer file.Close()

	return ParseEncoded(file)
}

// ParseEncoded builds a snapshot from saved page bytes, decoding them to
// UTF-8 first. The encoding is taken from a BOM or <meta charset>, else
// sniffed from the content.
func ParseEncoded(r io.Reader) (*goquery.Document, error) {
	decoded, err := charset.NewReader(r, "")
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}
	return Parse(decoded)
}

// Parse builds a snapshot from HTML that is already UTF-8.
func Parse(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}
