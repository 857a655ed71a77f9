package schema

// Custom string types for type safety.
type (
	// SizeBin labels one of the fixed LOC ranges.
	SizeBin string

	// OriginKey is a canonical scan-origin group.
	OriginKey string

	// DumpFormat represents the format of the full raw-data dump.
	DumpFormat string

	// HistoryBackend represents the run-history storage backend.
	HistoryBackend string
)

// All size bins, smallest first. Upper bounds are inclusive: a scan of
// exactly 20000 lines lands in Bin0to20k.
const (
	Bin0to20k    SizeBin = "0-20k"
	Bin20kto50k  SizeBin = "20k-50k"
	Bin50kto100k SizeBin = "50k-100k"
	Bin100kto250k SizeBin = "100k-250k"
	Bin250kto500k SizeBin = "250k-500k"
	Bin500kto1M  SizeBin = "500k-1M"
	Bin1Mto2M    SizeBin = "1M-2M"
	Bin2Mto3M    SizeBin = "2M-3M"
	Bin3Mto5M    SizeBin = "3M-5M"
	Bin5Mto7M    SizeBin = "5M-7M"
	Bin7Mto10M   SizeBin = "7M-10M"
	Bin10MPlus   SizeBin = "10M+"
)

// AllSizeBins lists every size bin in ascending order.
var AllSizeBins = []SizeBin{
	Bin0to20k,
	Bin20kto50k,
	Bin50kto100k,
	Bin100kto250k,
	Bin250kto500k,
	Bin500kto1M,
	Bin1Mto2M,
	Bin2Mto3M,
	Bin3Mto5M,
	Bin5Mto7M,
	Bin7Mto10M,
	Bin10MPlus,
}

// OriginKeys is the canonical origin enumeration. Classification walks this
// slice in order and picks the first key that is a prefix of the observed
// origin string, so the order is a contract: cx-CLI must stay after CLI to
// document the precedence, and reordering changes report numbers.
var OriginKeys = []OriginKey{
	"ADO",
	"Bamboo",
	"CLI",
	"cx-CLI",
	"CxFlow",
	"Eclipse",
	"cx-intellij",
	"Jenkins",
	"Manual",
	"Maven",
	"Other",
	"System",
	"TeamCity",
	"TFS",
	"Visual Studio",
	"Visual-Studio-Code",
	"VSTS",
	"Web Portal",
}

// OriginNames maps each canonical key to its printable display name.
var OriginNames = map[OriginKey]string{
	"ADO":                "Azure DevOps",
	"Bamboo":             "Bamboo",
	"CLI":                "CLI",
	"cx-CLI":             "CxCLI",
	"CxFlow":             "CxFlow",
	"Eclipse":            "Eclipse",
	"cx-intellij":        "IntelliJ",
	"Jenkins":            "Jenkins",
	"Manual":             "Manual",
	"Maven":              "Maven",
	"Other":              "Other",
	"System":             "System",
	"TeamCity":           "TeamCity",
	"TFS":                "TFS",
	"Visual Studio":      "Visual Studio",
	"Visual-Studio-Code": "VS Code",
	"VSTS":               "VSTS",
	"Web Portal":         "Web Portal",
}

// OriginOther is the fallback bucket when nothing matches.
const OriginOther OriginKey = "Other"

// All dump formats supported.
const (
	CSVDump     DumpFormat = "csv" // default
	ParquetDump DumpFormat = "parquet"
)

// All history backends supported.
const (
	SQLiteHistory HistoryBackend = "sqlite" // default
	NoneHistory   HistoryBackend = "none"
)

// ValidDumpFormats lists all valid full-dump formats.
var ValidDumpFormats = map[DumpFormat]struct{}{
	CSVDump:     {},
	ParquetDump: {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[HistoryBackend]struct{}{
	SQLiteHistory: {},
	NoneHistory:   {},
}
