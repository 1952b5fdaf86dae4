package marketdata

// defaultCodeTable maps Yahoo Finance exchange codes to canonical MIC codes.
// The set is deliberately small and vetted; codes outside it fall through
// unchanged and resolve (or not) against the exchange store downstream.
var defaultCodeTable = map[string]string{
	"NMS": "XNAS", // NASDAQ Global Select
	"NGM": "XNAS", // NASDAQ Global Market
	"NCM": "XNAS", // NASDAQ Capital Market
	"NYQ": "XNYS", // NYSE
	"ASE": "XASE", // NYSE American
	"LSE": "XLON", // London Stock Exchange
	"GER": "XFRA", // Frankfurt (Xetra feed)
	"FRA": "XFRA", // Frankfurt floor
	"JPX": "XTKS", // Tokyo Stock Exchange
}

// CodeMapper translates provider-specific exchange codes into canonical MIC
// codes. Mapping is pure and total: unknown codes map to themselves.
type CodeMapper struct {
	table map[string]string
}

// NewCodeMapper builds a mapper from the built-in table merged with the
// given overrides. Overrides win on collision, so deployments can extend or
// correct the table without a rebuild.
func NewCodeMapper(overrides map[string]string) *CodeMapper {
	table := make(map[string]string, len(defaultCodeTable)+len(overrides))
	for code, mic := range defaultCodeTable {
		table[code] = mic
	}
	for code, mic := range overrides {
		table[code] = mic
	}
	return &CodeMapper{table: table}
}

// Map returns the canonical MIC code for a provider exchange code, or the
// code unchanged when it is not in the table.
func (m *CodeMapper) Map(code string) string {
	if mic, ok := m.table[code]; ok {
		return mic
	}
	return code
}
