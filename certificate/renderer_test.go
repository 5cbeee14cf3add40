package certificate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderSVGDeterminism(t *testing.T) {
	data := Data{
		UserName:          "Budi Santoso",
		CourseName:        "Dasar-Dasar Go",
		CompletionDate:    time.Date(2025, time.August, 17, 10, 30, 0, 0, time.UTC),
		CertificateNumber: "CERT-2025-000123",
	}

	first := RenderSVG(data)
	second := RenderSVG(data)

	assert.Equal(t, first, second, "identical input must produce byte-identical output")
}

func TestRenderSVGEscapesUntrustedText(t *testing.T) {
	data := Data{
		UserName:          `Budi <script>alert('x')</script> & "Friends"`,
		CourseName:        `<img src=x> Kursus 'Berbahaya'`,
		CompletionDate:    time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC),
		CertificateNumber: "CERT-2025-000001",
	}

	svg := RenderSVG(data)

	assert.NotContains(t, svg, "<script>")
	assert.NotContains(t, svg, "<img")
	assert.Contains(t, svg, "&lt;script&gt;")
	assert.Contains(t, svg, "&amp;")
	assert.Contains(t, svg, "&quot;Friends&quot;")
	assert.Contains(t, svg, "&apos;Berbahaya&apos;")
}

func TestRenderSVGFormatsIndonesianDate(t *testing.T) {
	data := Data{
		UserName:          "Siti",
		CourseName:        "Matematika",
		CompletionDate:    time.Date(2025, time.August, 17, 0, 0, 0, 0, time.UTC),
		CertificateNumber: "CERT-2025-000002",
	}

	svg := RenderSVG(data)

	assert.Contains(t, svg, "pada tanggal 17 Agustus 2025")
}

func TestRenderSVGIsSelfContained(t *testing.T) {
	data := Data{
		UserName:          "Siti",
		CourseName:        "Matematika",
		CompletionDate:    time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		CertificateNumber: "CERT-2025-000003",
	}

	svg := RenderSVG(data)

	assert.True(t, strings.HasPrefix(svg, "<svg "))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `xmlns="http://www.w3.org/2000/svg"`)
	// The namespace declaration is the only URL allowed in the document
	assert.Equal(t, 1, strings.Count(svg, "http"), "must not reference external resources")
	assert.NotContains(t, svg, "href")
	assert.Contains(t, svg, `width="1200" height="850"`)
	assert.Contains(t, svg, "No. Sertifikat: CERT-2025-000003")
}

func TestFormatIndonesianDateMonths(t *testing.T) {
	cases := []struct {
		month    time.Month
		expected string
	}{
		{time.January, "1 Januari 2024"},
		{time.June, "1 Juni 2024"},
		{time.December, "1 Desember 2024"},
	}

	for _, tc := range cases {
		got := formatIndonesianDate(time.Date(2024, tc.month, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, tc.expected, got)
	}
}
