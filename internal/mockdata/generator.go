// Package mockdata generates deterministic sample archives for demo
// environments. The same archive name always yields the same rows, so demo
// links and screenshots stay stable across restarts.
package mockdata

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/pupuk-kujang/siadil-api/internal/models"
)

var contributors = []string{
	"Andi Prasetyo",
	"Budi Santoso",
	"Citra Lestari",
	"Dewi Anggraini",
	"Eko Wibowo",
	"Fajar Nugroho",
}

var updaters = []string{
	"Andi Prasetyo",
	"Citra Lestari",
	"Eko Wibowo",
}

// Generate builds count rows for one archive. The archive name seeds the
// random source, so output is stable per archive.
func Generate(archive string, count int, now time.Time) []models.Document {
	if count <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seedFor(archive)))
	prefix := codePrefix(archive)
	year := now.Year()

	docs := make([]models.Document, 0, count)
	for i := 1; i <= count; i++ {
		docDate := time.Date(year, time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.Local)

		// Expiry offsets spread rows across the urgency buckets: some past
		// due, some inside the red and yellow windows, the rest far out.
		expireOffset := expireOffsets[rng.Intn(len(expireOffsets))]
		expireDate := now.AddDate(0, 0, expireOffset)

		first := rng.Intn(len(contributors))
		second := (first + 1 + rng.Intn(len(contributors)-1)) % len(contributors)

		docs = append(docs, models.Document{
			ID:               fmt.Sprintf("%s-%03d", prefix, i),
			NumberTitle:      fmt.Sprintf("%s-%03d • %s Document %d", prefix, i, archive, i),
			Description:      fmt.Sprintf("Sample %s record number %d", strings.ToLower(archive), i),
			DocumentDate:     docDate.Format("2006-01-02"),
			ExpireDate:       expireDate.Format("2006-01-02"),
			Contributors:     []string{contributors[first], contributors[second]},
			Archive:          archive,
			UpdatedCreatedBy: updaters[rng.Intn(len(updaters))],
		})
	}
	return docs
}

var expireOffsets = []int{-20, -5, 3, 10, 25, 45, 90, 180, 365}

// codePrefix derives a document code prefix from the archive name initials,
// e.g. "Teknologi Informasi & Komunikasi" becomes "TIK". Names without
// letters fall back to "DOC".
func codePrefix(archive string) string {
	var b strings.Builder
	for _, word := range strings.Fields(archive) {
		r := rune(word[0])
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "DOC"
	}
	return b.String()
}

func seedFor(archive string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(archive))
	return int64(h.Sum64())
}
