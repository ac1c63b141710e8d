package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const defaultTextsFile = "data/texts.txt"

// sampleTexts are used when no texts file can be read.
var sampleTexts = []string{
	"Natural language processing helps computers understand human language.",
	"Machine learning algorithms learn from data.",
	"Deep learning uses neural networks with many layers.",
	"Python is a popular programming language for AI.",
	"FastAPI makes it easy to build web APIs.",
}

// loadTexts reads one text per non-blank line. Falls back to sampleTexts when
// the file is missing or unreadable, reporting why on w.
func loadTexts(path string, w io.Writer) []string {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator
	if err != nil {
		fmt.Fprintf(w, "Cannot open %s (%v), using %d sample texts\n", path, err, len(sampleTexts))
		return sampleTexts
	}
	defer func() { _ = f.Close() }()

	texts, err := readTexts(f)
	if err != nil {
		fmt.Fprintf(w, "Cannot read %s (%v), using %d sample texts\n", path, err, len(sampleTexts))
		return sampleTexts
	}
	if len(texts) == 0 {
		fmt.Fprintf(w, "%s has no texts, using %d sample texts\n", path, len(sampleTexts))
		return sampleTexts
	}
	fmt.Fprintf(w, "Loaded %d texts from %s\n", len(texts), path)
	return texts
}

func readTexts(r io.Reader) ([]string, error) {
	var texts []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	return texts, sc.Err()
}

func firstN(texts []string, n int) []string {
	if len(texts) < n {
		return texts
	}
	return texts[:n]
}
