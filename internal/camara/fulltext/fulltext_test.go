package fulltext

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/farxc/envelopa-camara/internal/camara/downloader"
	"github.com/farxc/envelopa-camara/internal/camara/types"
	"github.com/farxc/envelopa-camara/internal/logger"
	"github.com/farxc/envelopa-camara/internal/store"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	docs  map[string][]byte
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*downloader.DownloadResult, error) {
	f.calls = append(f.calls, url)
	body, ok := f.docs[url]
	if !ok {
		return nil, errors.New("unexpected status 404 Not Found")
	}
	return &downloader.DownloadResult{URL: url, Body: body}, nil
}

func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:pPr><w:jc w:val="both"/></w:pPr><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := []struct{ name, content string }{
		{"word/document.xml", body.String()},
		{"[Content_Types].xml", `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`},
		{"_rels/.rels", `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// buildPDF writes a one-page document showing lines with a WinAnsi Helvetica font.
func buildPDF(t *testing.T, lines ...string) []byte {
	t.Helper()
	var content bytes.Buffer
	content.WriteString("BT /F1 12 Tf\n")
	for i, line := range lines {
		fmt.Fprintf(&content, "1 0 0 1 72 %d Tm (%s) Tj\n", 720-14*i, line)
	}
	content.WriteString("ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func withLink(id int64, link string) *types.Proposition {
	p := &types.Proposition{ID: id, Name: "PL 100/2016", Number: 100, Year: 2016}
	p.SetFullTextLink(link)
	return p
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Art. 1º - Fica instituído o Dia Nacional...")
	require.Equal(t, []string{"Art", "1º", "Fica", "instituído", "o", "Dia", "Nacional"}, got)

	// a decomposed "í" is composed before splitting
	require.Equal(t, []string{"institu\u00eddo"}, Tokenize("institui\u0301do"))
	require.Equal(t, []string{"art_2", "3"}, Tokenize("art_2, § 3"))
	require.Equal(t, []string{"área", "de", "100", "m²", "e", "½", "parte"}, Tokenize("área de 100 m² e ½ parte"))
	require.Empty(t, Tokenize(" -- ... "))
}

func TestValidLink(t *testing.T) {
	cases := []struct {
		link string
		want bool
	}{
		{"http://www.camara.gov.br/proposicoesWeb/prop_mostrarintegra?codteor=1446342", true},
		{"https://camara.leg.br/", true},
		{"ftp://files.example.org/a", true},
		{"http://localhost:8080/teor", true},
		{"http://10.0.0.1/teor.pdf", true},
		{"not a url", false},
		{"", false},
		{"www.camara.gov.br/integra", false},
		{"mailto:someone@camara.gov.br", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ValidLink(tc.link), tc.link)
	}
}

func TestSniff(t *testing.T) {
	format, _ := Sniff([]byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n"))
	require.Equal(t, FormatPDF, format)

	format, _ = Sniff(buildDOCX(t, "Art. 1º"))
	require.Equal(t, FormatDOCX, format)

	ole := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 512)...)
	format, _ = Sniff(ole)
	require.Equal(t, FormatUnknown, format)

	format, _ = Sniff([]byte("just some text"))
	require.Equal(t, FormatUnknown, format)
}

func TestExtractDOCX(t *testing.T) {
	text, err := Extract(buildDOCX(t, "Art. 1º Fica instituído", "Art. 2º Esta lei entra em vigor"))
	require.NoError(t, err)
	require.Equal(t, "Art. 1º Fica instituído\nArt. 2º Esta lei entra em vigor", text)
}

func TestExtractPDF(t *testing.T) {
	text, err := Extract(buildPDF(t, `Art. 1\272 Fica institu\355do`, `Art. 2\272 Esta lei entra em vigor`))
	require.NoError(t, err)
	require.Contains(t, text, "Art. 1º Fica instituído")
	require.Contains(t, text, "Art. 2º Esta lei entra em vigor")
	require.Less(t, strings.Index(text, "Art. 1º"), strings.Index(text, "Art. 2º"))
}

func TestExtractRejectsUnknownAndCorrupt(t *testing.T) {
	_, err := Extract([]byte("plain text"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Extract([]byte("%PDF-1.4\nthis is not really a pdf"))
	require.Error(t, err)
}

func TestResolveDOCX(t *testing.T) {
	link := "http://www.camara.gov.br/integra?codteor=1"
	fetcher := &fakeFetcher{docs: map[string][]byte{link: buildDOCX(t, "Art. 1º - Fica instituído")}}
	r := NewResolver(fetcher, DirQuarantine{Dir: t.TempDir()}, nil)

	p := withLink(2080512, link)
	require.Equal(t, Resolved, r.Resolve(context.Background(), p))

	tokens, ok := p.FullText()
	require.True(t, ok)
	require.Equal(t, []string{"Art", "1º", "Fica", "instituído"}, tokens)
}

func TestResolvePDF(t *testing.T) {
	link := "http://www.camara.gov.br/proposicoesWeb/prop_mostrarintegra?codteor=1446342"
	fetcher := &fakeFetcher{docs: map[string][]byte{link: buildPDF(t, `Art. 1\272 - Fica institu\355do`)}}
	dir := t.TempDir()
	r := NewResolver(fetcher, DirQuarantine{Dir: dir}, nil)

	p := withLink(2080512, link)
	require.Equal(t, Resolved, r.Resolve(context.Background(), p))

	tokens, ok := p.FullText()
	require.True(t, ok)
	require.Equal(t, []string{"Art", "1º", "Fica", "instituído"}, tokens)
	require.NoFileExists(t, DirQuarantine{Dir: dir}.Path(2080512))
}

func TestResolveIsIdempotent(t *testing.T) {
	fetcher := &fakeFetcher{}
	r := NewResolver(fetcher, DirQuarantine{Dir: t.TempDir()}, nil)

	p := withLink(1, "http://www.camara.gov.br/integra?codteor=1")
	p.SetFullText([]string{"já", "resolvido"})

	require.Equal(t, Resolved, r.Resolve(context.Background(), p))
	require.Empty(t, fetcher.calls)

	tokens, _ := p.FullText()
	require.Equal(t, []string{"já", "resolvido"}, tokens)
}

func TestResolveInvalidLink(t *testing.T) {
	var buf bytes.Buffer
	fetcher := &fakeFetcher{}
	r := NewResolver(fetcher, DirQuarantine{Dir: t.TempDir()}, logger.New(&buf, logger.LevelWarn))

	p := withLink(2080512, "not a url")
	require.Equal(t, SkippedNoLink, r.Resolve(context.Background(), p))
	require.Empty(t, fetcher.calls)
	require.Contains(t, buf.String(), "[WARN]")
	require.Contains(t, buf.String(), "id=2080512")

	// an unset link is skipped the same way
	require.Equal(t, SkippedNoLink, r.Resolve(context.Background(), &types.Proposition{ID: 3}))
}

func TestResolveQuarantinesUnknownFormat(t *testing.T) {
	link := "http://www.camara.gov.br/integra?codteor=2"
	body := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 512)...)
	dir := filepath.Join(t.TempDir(), "inteiro_teor")

	var buf bytes.Buffer
	fetcher := &fakeFetcher{docs: map[string][]byte{link: body}}
	r := NewResolver(fetcher, DirQuarantine{Dir: dir}, logger.New(&buf, logger.LevelWarn))

	p := withLink(42, link)
	require.Equal(t, Quarantined, r.Resolve(context.Background(), p))
	require.False(t, p.HasFullText())
	require.Contains(t, buf.String(), link)

	saved, err := os.ReadFile(filepath.Join(dir, "inteiro_teor_42.bin"))
	require.NoError(t, err)
	require.Equal(t, body, saved)

	// running again overwrites the same file
	require.Equal(t, Quarantined, r.Resolve(context.Background(), p))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestResolveQuarantinesCorruptPDF(t *testing.T) {
	link := "http://www.camara.gov.br/integra?codteor=3"
	dir := t.TempDir()
	fetcher := &fakeFetcher{docs: map[string][]byte{link: []byte("%PDF-1.4\n1 0 obj << /Type /Catalog >>\ntruncated")}}
	r := NewResolver(fetcher, DirQuarantine{Dir: dir}, nil)

	require.Equal(t, Quarantined, r.Resolve(context.Background(), withLink(7, link)))
	require.FileExists(t, DirQuarantine{Dir: dir}.Path(7))
}

func TestResolveDownloadFailure(t *testing.T) {
	r := NewResolver(&fakeFetcher{}, DirQuarantine{Dir: t.TempDir()}, nil)
	p := withLink(8, "http://www.camara.gov.br/integra?codteor=404")
	require.Equal(t, DownloadFailed, r.Resolve(context.Background(), p))
	require.False(t, p.HasFullText())
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	good := "http://www.camara.gov.br/integra?codteor=1"
	bad := "http://www.camara.gov.br/integra?codteor=2"

	fetcher := &fakeFetcher{docs: map[string][]byte{
		good: buildDOCX(t, "Art. 1º"),
		bad:  []byte("???"),
	}}
	r := NewResolver(fetcher, DirQuarantine{Dir: t.TempDir()}, nil)

	batches := store.NewFileStore(t.TempDir())
	key := types.NewBatchKey("PL", 2016, false)
	require.NoError(t, batches.Put(ctx, &types.Batch{
		Key: key,
		Propositions: []*types.Proposition{
			withLink(1, good),
			withLink(2, "not a url"),
			withLink(3, bad),
		},
	}))

	summary, err := r.Sweep(ctx, batches, key)
	require.NoError(t, err)
	require.Equal(t, Summary{Resolved: 1, SkippedNoLink: 1, Quarantined: 1}, summary)
	require.Equal(t, 3, summary.Total())

	stored, err := batches.Get(ctx, key)
	require.NoError(t, err)
	tokens, ok := stored.Propositions[0].FullText()
	require.True(t, ok)
	require.Equal(t, []string{"Art", "1º"}, tokens)
	require.False(t, stored.Propositions[1].HasFullText())

	// a second sweep fetches only the documents that did not resolve
	fetcher.calls = nil
	summary, err = r.Sweep(ctx, batches, key)
	require.NoError(t, err)
	require.Equal(t, []string{bad}, fetcher.calls)
	require.Equal(t, 1, summary[Resolved])
}

func TestSweepMissingBatch(t *testing.T) {
	r := NewResolver(&fakeFetcher{}, DirQuarantine{Dir: t.TempDir()}, nil)
	_, err := r.Sweep(context.Background(), store.NewFileStore(t.TempDir()), types.NewBatchKey("PL", 1999, true))
	require.ErrorIs(t, err, store.ErrBatchNotFound)
}
