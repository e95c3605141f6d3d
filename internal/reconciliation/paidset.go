package reconciliation

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"cobranza/internal/cfdi"
	"cobranza/internal/logger"
)

// PaidSet holds the two independently derived collections of identifiers
// considered paid. They are kept separate so provenance stays visible; the
// classifier consults both.
type PaidSet struct {
	// ComplementUUIDs are invoice identifiers referenced by payment
	// complements, upper-cased.
	ComplementUUIDs map[string]struct{}

	// ManualFolios are folios listed in the manual override file,
	// upper-cased. Matching is by folio text only, not client-scoped.
	ManualFolios map[string]struct{}
}

// HasUUID reports whether uuid is settled by a payment complement.
func (p PaidSet) HasUUID(uuid string) bool {
	_, ok := p.ComplementUUIDs[strings.ToUpper(uuid)]
	return ok
}

// HasFolio reports whether folio was marked paid manually.
func (p PaidSet) HasFolio(folio string) bool {
	_, ok := p.ManualFolios[strings.ToUpper(folio)]
	return ok
}

// LoadManualFolios reads the manual override CSV and returns the set of
// folios it lists, upper-cased. A missing file is not an error: it means no
// manual overrides. A malformed or unreadable file is logged and treated as
// empty so the run continues.
func LoadManualFolios(path string) map[string]struct{} {
	log := logger.WithComponent("manual-overrides")
	folios := make(map[string]struct{})

	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("file", path).Msg("Cannot read manual overrides file, treating as empty")
		}
		return folios
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Cannot read manual overrides header, treating as empty")
		return folios
	}

	folioCol := -1
	for i, name := range header {
		if strings.TrimSpace(name) == "Folio" {
			folioCol = i
			break
		}
	}
	if folioCol < 0 {
		log.Warn().Str("file", path).Msg("Manual overrides file has no Folio column, treating as empty")
		return folios
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Malformed manual overrides row, stopping at last good row")
			break
		}
		if folioCol >= len(record) {
			continue
		}
		folio := strings.ToUpper(strings.TrimSpace(record[folioCol]))
		if folio != "" {
			folios[folio] = struct{}{}
		}
	}

	log.Info().Int("folios", len(folios)).Str("file", path).Msg("Manual overrides loaded")
	return folios
}

// LoadComplementUUIDs scans a directory of payment-complement documents and
// returns the set of referenced invoice identifiers, upper-cased. A document
// that fails to parse is logged and skipped; the error return is non-nil
// only when the directory itself cannot be read.
func LoadComplementUUIDs(dir string) (map[string]struct{}, error) {
	log := logger.WithComponent("complements")

	results, err := cfdi.ScanComplements(dir)
	if err != nil {
		return nil, err
	}

	uuids := make(map[string]struct{})
	skipped := 0
	for _, res := range results {
		if res.Err != nil {
			skipped++
			log.Warn().Err(res.Err).Str("file", res.File).Msg("Failed to parse payment complement, skipping")
			continue
		}
		for _, id := range res.RelatedIDs {
			uuids[strings.ToUpper(id)] = struct{}{}
		}
	}

	log.Info().
		Int("documents", len(results)).
		Int("skipped", skipped).
		Int("uuids", len(uuids)).
		Str("dir", dir).
		Msg("Payment complements scanned")

	return uuids, nil
}
