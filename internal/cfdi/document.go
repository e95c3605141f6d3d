// Package cfdi parses CFDI 4.0 invoice documents and Pagos 2.0 payment
// complements as issued by the Mexican tax authority (SAT).
//
// Only the attributes this tool reconciles on are modeled; everything else
// in the documents is ignored. Schema validation is out of scope: a
// document that does not decode is reported to the caller and skipped.
package cfdi

import "encoding/xml"

// SAT schema namespaces.
const (
	NamespaceCFDI    = "http://www.sat.gob.mx/cfd/4"
	NamespacePagos20 = "http://www.sat.gob.mx/Pagos20"
	NamespaceTimbre  = "http://www.sat.gob.mx/TimbreFiscalDigital"
)

// VoucherTypeIncome is the TipoDeComprobante value for income vouchers
// (receivables). Other types (payroll, transfer, payment) are not receivables.
const VoucherTypeIncome = "I"

// Comprobante is the root element of a CFDI invoice document.
// Amount and date attributes are kept as raw strings; interpretation
// (and per-document failure handling) belongs to the caller.
type Comprobante struct {
	XMLName           xml.Name      `xml:"Comprobante"`
	TipoDeComprobante string        `xml:"TipoDeComprobante,attr"`
	Folio             string        `xml:"Folio,attr"`
	Fecha             string        `xml:"Fecha,attr"`
	Total             string        `xml:"Total,attr"`
	Moneda            string        `xml:"Moneda,attr"`
	MetodoPago        string        `xml:"MetodoPago,attr"`
	CondicionesDePago string        `xml:"CondicionesDePago,attr"`
	Receptor          *Receptor     `xml:"Receptor"`
	Complemento       []Complemento `xml:"Complemento"`
}

// Receptor is the invoice recipient block.
type Receptor struct {
	Nombre string `xml:"Nombre,attr"`
	Rfc    string `xml:"Rfc,attr"`
}

// Complemento wraps stamped add-ons of a voucher. The digital stamp is the
// only child this tool reads.
type Complemento struct {
	Timbre *TimbreFiscalDigital `xml:"TimbreFiscalDigital"`
}

// TimbreFiscalDigital carries the tax authority's stamp with the document's
// unique identifier.
type TimbreFiscalDigital struct {
	UUID string `xml:"UUID,attr"`
}

// StampUUID returns the UUID from the first digital stamp found, or false
// when the document carries no stamp.
func (c *Comprobante) StampUUID() (string, bool) {
	for _, comp := range c.Complemento {
		if comp.Timbre != nil && comp.Timbre.UUID != "" {
			return comp.Timbre.UUID, true
		}
	}
	return "", false
}
