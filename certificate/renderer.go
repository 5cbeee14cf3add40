package certificate

import (
	"fmt"
	"strings"
	"time"
)

// Data carries everything the renderer needs. UserName and CourseName are
// caller-supplied and escaped before being embedded in the markup.
type Data struct {
	UserName          string
	CourseName        string
	CompletionDate    time.Time
	CertificateNumber string
}

// Indonesian month names for the long-form completion date
var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// formatIndonesianDate renders e.g. "17 Agustus 2025"
func formatIndonesianDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func escapeXML(unsafe string) string {
	return xmlEscaper.Replace(unsafe)
}

// RenderSVG produces a self-contained 1200x850 certificate document. It is a
// pure function: identical input yields byte-identical output. Names long
// enough to overflow the fixed canvas are a known limitation.
func RenderSVG(data Data) string {
	formattedDate := formatIndonesianDate(data.CompletionDate)

	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="1200" height="850" viewBox="0 0 1200 850">
  <defs>
    <linearGradient id="borderGradient" x1="0%%" y1="0%%" x2="100%%" y2="100%%">
      <stop offset="0%%" style="stop-color:#C9A227;stop-opacity:1" />
      <stop offset="50%%" style="stop-color:#F4D03F;stop-opacity:1" />
      <stop offset="100%%" style="stop-color:#C9A227;stop-opacity:1" />
    </linearGradient>
    <pattern id="pattern" width="40" height="40" patternUnits="userSpaceOnUse">
      <circle cx="20" cy="20" r="1" fill="#E8E8E8"/>
    </pattern>
  </defs>

  <!-- Background -->
  <rect width="1200" height="850" fill="#FAFAFA"/>
  <rect width="1200" height="850" fill="url(#pattern)"/>

  <!-- Outer Border -->
  <rect x="20" y="20" width="1160" height="810" fill="none" stroke="url(#borderGradient)" stroke-width="3"/>
  <rect x="30" y="30" width="1140" height="790" fill="none" stroke="url(#borderGradient)" stroke-width="1"/>

  <!-- Corner Ornaments -->
  <path d="M50,50 L100,50 L100,55 L55,55 L55,100 L50,100 Z" fill="#C9A227"/>
  <path d="M1150,50 L1100,50 L1100,55 L1145,55 L1145,100 L1150,100 Z" fill="#C9A227"/>
  <path d="M50,800 L100,800 L100,795 L55,795 L55,750 L50,750 Z" fill="#C9A227"/>
  <path d="M1150,800 L1100,800 L1100,795 L1145,795 L1145,750 L1150,750 Z" fill="#C9A227"/>

  <!-- Header -->
  <text x="600" y="120" font-family="Georgia, serif" font-size="28" fill="#666666" text-anchor="middle" letter-spacing="8">SERTIFIKAT</text>
  <text x="600" y="170" font-family="Georgia, serif" font-size="42" fill="#1a1a1a" text-anchor="middle" font-weight="bold">PENYELESAIAN KURSUS</text>

  <!-- Decorative Line -->
  <line x1="400" y1="200" x2="800" y2="200" stroke="#C9A227" stroke-width="2"/>
  <circle cx="600" cy="200" r="5" fill="#C9A227"/>

  <!-- Certificate Text -->
  <text x="600" y="280" font-family="Georgia, serif" font-size="20" fill="#666666" text-anchor="middle">Dengan ini menyatakan bahwa</text>

  <!-- User Name -->
  <text x="600" y="360" font-family="Georgia, serif" font-size="48" fill="#1a1a1a" text-anchor="middle" font-weight="bold" font-style="italic">%s</text>
  <line x1="300" y1="380" x2="900" y2="380" stroke="#C9A227" stroke-width="1"/>

  <!-- Course Completion Text -->
  <text x="600" y="450" font-family="Georgia, serif" font-size="20" fill="#666666" text-anchor="middle">telah berhasil menyelesaikan kursus</text>

  <!-- Course Name -->
  <text x="600" y="520" font-family="Georgia, serif" font-size="36" fill="#2563EB" text-anchor="middle" font-weight="bold">%s</text>

  <!-- Completion Date -->
  <text x="600" y="600" font-family="Georgia, serif" font-size="18" fill="#666666" text-anchor="middle">pada tanggal %s</text>

  <!-- Seal/Badge -->
  <circle cx="600" cy="680" r="40" fill="none" stroke="#C9A227" stroke-width="2"/>
  <circle cx="600" cy="680" r="35" fill="none" stroke="#C9A227" stroke-width="1"/>
  <text x="600" y="675" font-family="Georgia, serif" font-size="12" fill="#C9A227" text-anchor="middle">RESMI</text>
  <text x="600" y="690" font-family="Georgia, serif" font-size="10" fill="#C9A227" text-anchor="middle">TERVERIFIKASI</text>

  <!-- Certificate Number -->
  <text x="600" y="750" font-family="Courier, monospace" font-size="14" fill="#999999" text-anchor="middle">No. Sertifikat: %s</text>
</svg>`,
		escapeXML(data.UserName),
		escapeXML(data.CourseName),
		formattedDate,
		escapeXML(data.CertificateNumber),
	)
}
