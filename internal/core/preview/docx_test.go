package preview

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const twoPageDoc = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>SAFE Agreement between </w:t></w:r><w:r><w:t>[CompanyName]</w:t></w:r></w:p>
    <w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t>First page text</w:t></w:r></w:p>
    <w:p><w:r><w:br w:type="page"/></w:r><w:r><w:t>Second page text</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestDocxRendererExtractsText(t *testing.T) {
	target := &fakeTarget{visible: true, width: 80}

	err := DocxRenderer{}.Render(buildDocx(t, twoPageDoc), target, nil, defaultRenderOptions())
	require.NoError(t, err)

	assert.Contains(t, target.content, "SAFE Agreement between [CompanyName]",
		"runs within a paragraph are joined")
	assert.Contains(t, target.content, "First page text")
	assert.Contains(t, target.content, "Second page text")
	assert.Contains(t, target.content, "page 2", "page break produces a divider")
	assert.NotContains(t, target.content, "center", "property values are not text")
}

func TestDocxRendererIgnoresPageBreaksWhenDisabled(t *testing.T) {
	target := &fakeTarget{visible: true, width: 80}
	opts := defaultRenderOptions()
	opts.PageBreaks = false

	err := DocxRenderer{}.Render(buildDocx(t, twoPageDoc), target, nil, opts)
	require.NoError(t, err)
	assert.NotContains(t, target.content, "page 2")
}

func TestDocxRendererRejectsGarbage(t *testing.T) {
	target := &fakeTarget{visible: true}

	err := DocxRenderer{}.Render([]byte("not a zip archive"), target, nil, defaultRenderOptions())
	require.Error(t, err)
}

func TestDocxRendererRejectsArchiveWithoutBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, _ = w.Write([]byte("<styles/>"))
	require.NoError(t, zw.Close())

	target := &fakeTarget{visible: true}
	err = DocxRenderer{}.Render(buf.Bytes(), target, nil, defaultRenderOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document body")
}

func TestDocxRendererZeroSizeTargetPaintsQuietly(t *testing.T) {
	// A zero-size target produces no visible output rather than erroring;
	// the lifecycle relies on this when the visibility wait gives up.
	target := &fakeTarget{visible: false, width: 0}

	err := DocxRenderer{}.Render(buildDocx(t, twoPageDoc), target, nil, defaultRenderOptions())
	require.NoError(t, err)
	assert.True(t, strings.Contains(target.content, "First page text"))
}
