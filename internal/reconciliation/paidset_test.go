package reconciliation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManualFoliosMissingFile(t *testing.T) {
	folios := LoadManualFolios(filepath.Join(t.TempDir(), "no-such-file.csv"))
	require.Empty(t, folios)
}

func TestLoadManualFoliosUpperCases(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pagadas.csv", "Folio\na100\nB200\n b300 \n")

	folios := LoadManualFolios(path)
	require.Len(t, folios, 3)
	require.Contains(t, folios, "A100")
	require.Contains(t, folios, "B200")
	require.Contains(t, folios, "B300")
}

func TestLoadManualFoliosFolioColumnAnywhere(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pagadas.csv", "Fecha,Folio,Nota\n2026-01-05,a100,pagada\n2026-02-01,c9,transferencia\n")

	folios := LoadManualFolios(path)
	require.Len(t, folios, 2)
	require.Contains(t, folios, "A100")
	require.Contains(t, folios, "C9")
}

func TestLoadManualFoliosNoFolioColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pagadas.csv", "Factura\nA100\n")

	folios := LoadManualFolios(path)
	require.Empty(t, folios)
}

func TestLoadManualFoliosEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pagadas.csv", "")

	folios := LoadManualFolios(path)
	require.Empty(t, folios)
}

const complementDoc = `<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" xmlns:pago20="http://www.sat.gob.mx/Pagos20" TipoDeComprobante="P">
  <cfdi:Complemento>
    <pago20:Pagos Version="2.0">
      <pago20:Pago FechaPago="2026-07-15T09:00:00">
        <pago20:DoctoRelacionado IdDocumento="aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee" Folio="A100"/>
        <pago20:DoctoRelacionado IdDocumento="11111111-2222-3333-4444-555555555555"/>
      </pago20:Pago>
    </pago20:Pagos>
  </cfdi:Complemento>
</cfdi:Comprobante>`

func TestLoadComplementUUIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pago1.xml", complementDoc)
	writeFile(t, dir, "roto.xml", "<cfdi:Comprobante") // malformed, must be skipped
	writeFile(t, dir, "notas.txt", "not an xml file")

	uuids, err := LoadComplementUUIDs(dir)
	require.NoError(t, err)
	require.Len(t, uuids, 2)
	require.Contains(t, uuids, "AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE")
	require.Contains(t, uuids, "11111111-2222-3333-4444-555555555555")
}

func TestLoadComplementUUIDsMissingDir(t *testing.T) {
	_, err := LoadComplementUUIDs(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestPaidSetMembershipIsCaseInsensitive(t *testing.T) {
	paid := PaidSet{
		ComplementUUIDs: map[string]struct{}{"AAAA-BBBB": {}},
		ManualFolios:    map[string]struct{}{"F77": {}},
	}

	require.True(t, paid.HasUUID("aaaa-bbbb"))
	require.True(t, paid.HasUUID("AAAA-BBBB"))
	require.False(t, paid.HasUUID("cccc-dddd"))
	require.True(t, paid.HasFolio("f77"))
	require.False(t, paid.HasFolio("f78"))
}
