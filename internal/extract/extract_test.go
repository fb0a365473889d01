package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildPDF writes a minimal PDF with one page per entry. An empty entry yields a page with no text.
func buildPDF(pages ...string) []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	kids := make([]string, 0, len(pages))
	for _, text := range pages {
		pageObj := len(objs) + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", pageObj))
		content := ""
		if text != "" {
			content = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", pageObj+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objs[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestExtractPDFSinglePage(t *testing.T) {
	got, err := ExtractPDF(context.Background(), buildPDF("Jane Doe Synergy Ninja"))
	if err != nil {
		t.Fatalf("ExtractPDF: %v", err)
	}
	if !strings.Contains(got, "Jane Doe Synergy Ninja") {
		t.Fatalf("unexpected text %q", got)
	}
	if got != strings.TrimSpace(got) {
		t.Fatalf("expected trimmed output, got %q", got)
	}
}

func TestExtractPDFKeepsPageOrder(t *testing.T) {
	got, err := ExtractPDF(context.Background(), buildPDF("First page text", "", "Third page text"))
	if err != nil {
		t.Fatalf("ExtractPDF: %v", err)
	}
	first := strings.Index(got, "First page text")
	third := strings.Index(got, "Third page text")
	if first < 0 || third < 0 || first > third {
		t.Fatalf("unexpected page order in %q", got)
	}
	if !strings.Contains(got, pageSeparator) {
		t.Fatalf("expected blank line between pages, got %q", got)
	}
}

func TestExtractPDFZeroPages(t *testing.T) {
	_, err := ExtractPDF(context.Background(), buildPDF())
	if !errors.Is(err, ErrEmptyPDF) {
		t.Fatalf("expected ErrEmptyPDF, got %v", err)
	}
}

func TestExtractPDFImageOnly(t *testing.T) {
	_, err := ExtractPDF(context.Background(), buildPDF("", ""))
	if !errors.Is(err, ErrNoExtractableText) {
		t.Fatalf("expected ErrNoExtractableText, got %v", err)
	}
}

func TestExtractPDFInvalidBytes(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":     nil,
		"text":      []byte("this is definitely not a pdf"),
		"truncated": buildPDF("Jane Doe")[:60],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractPDF(context.Background(), data)
			if !errors.Is(err, ErrInvalidPDF) {
				t.Fatalf("expected ErrInvalidPDF, got %v", err)
			}
		})
	}
}

func TestExtractPDFHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractPDF(ctx, buildPDF("Jane Doe")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type fakePages struct {
	texts []string
	errs  map[int]error
}

func (f fakePages) NumPage() int { return len(f.texts) }

func (f fakePages) PageText(i int) (string, error) {
	if err := f.errs[i]; err != nil {
		return "", err
	}
	return f.texts[i-1], nil
}

func TestJoinPages(t *testing.T) {
	tests := []struct {
		name    string
		doc     fakePages
		want    string
		wantErr error
	}{
		{
			name: "all pages",
			doc:  fakePages{texts: []string{"  Experience\n", "Education", "Skills  "}},
			want: "Experience\n\n\nEducation\n\nSkills",
		},
		{
			name: "failed page skipped",
			doc:  fakePages{texts: []string{"one", "two", "three"}, errs: map[int]error{2: errors.New("bad font")}},
			want: "one\n\nthree",
		},
		{
			name: "whitespace pages skipped",
			doc:  fakePages{texts: []string{" ", "only", "\n\t"}},
			want: "only",
		},
		{
			name:    "no text anywhere",
			doc:     fakePages{texts: []string{"", "  "}, errs: map[int]error{1: errors.New("boom")}},
			wantErr: ErrNoExtractableText,
		},
		{
			name:    "zero pages",
			doc:     fakePages{},
			wantErr: ErrEmptyPDF,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := joinPages(context.Background(), tt.doc)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("joinPages: %v", err)
			}
			if got != tt.want {
				t.Fatalf("joinPages = %q, want %q", got, tt.want)
			}
		})
	}
}
