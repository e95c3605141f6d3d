package cfdi

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// InvoiceResult is one item of an invoice directory scan: either a decoded
// document or the failure that prevented decoding it. Callers decide whether
// failures are counted, logged, or ignored.
type InvoiceResult struct {
	File string
	Doc  *Comprobante
	Err  error
}

// ComplementResult is one item of a payment-complement directory scan.
// RelatedIDs holds the invoice identifiers the complement declares paid;
// a complement with no related documents yields an empty slice.
type ComplementResult struct {
	File       string
	RelatedIDs []string
	Err        error
}

// ScanInvoices decodes every .xml file in dir as a CFDI invoice document.
// Per-file failures are returned as failed items; the returned error is
// non-nil only when the directory itself cannot be read.
func ScanInvoices(dir string) ([]InvoiceResult, error) {
	const op = "ScanInvoices"

	files, err := xmlFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	results := make([]InvoiceResult, 0, len(files))
	for _, file := range files {
		doc, err := ParseInvoice(file)
		results = append(results, InvoiceResult{File: file, Doc: doc, Err: err})
	}
	return results, nil
}

// ScanComplements extracts related-document identifiers from every .xml file
// in dir. Per-file failures are returned as failed items; the returned error
// is non-nil only when the directory itself cannot be read.
func ScanComplements(dir string) ([]ComplementResult, error) {
	const op = "ScanComplements"

	files, err := xmlFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	results := make([]ComplementResult, 0, len(files))
	for _, file := range files {
		ids, err := relatedDocumentIDsFromFile(file)
		results = append(results, ComplementResult{File: file, RelatedIDs: ids, Err: err})
	}
	return results, nil
}

// ParseInvoice decodes a single CFDI invoice document from disk.
func ParseInvoice(path string) (*Comprobante, error) {
	const op = "ParseInvoice"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	var doc Comprobante
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: decoding %s: %w", op, filepath.Base(path), err)
	}
	return &doc, nil
}

// RelatedDocumentIDs streams through a payment-complement document and
// collects the IdDocumento attribute of every DoctoRelacionado element in
// the Pagos 2.0 namespace, wherever it appears in the tree.
func RelatedDocumentIDs(r io.Reader) ([]string, error) {
	const op = "RelatedDocumentIDs"

	var ids []string
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Space != NamespacePagos20 || start.Name.Local != "DoctoRelacionado" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "IdDocumento" && attr.Value != "" {
				ids = append(ids, attr.Value)
			}
		}
	}
	return ids, nil
}

func relatedDocumentIDsFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return RelatedDocumentIDs(f)
}

// xmlFiles lists the .xml files (case-insensitive extension) directly under
// dir, in directory order.
func xmlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
