package domain

const unknownDescription = "Unknown"

// StoreBackend selects the passage store implementation.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendMemory keeps passages in process memory.
	StoreBackendMemory StoreBackend = "memory"

	// StoreBackendSQLite persists passages in a local SQLite database with FTS5.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendMongo persists passages in a MongoDB collection.
	StoreBackendMongo StoreBackend = "mongo"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendMemory, StoreBackendSQLite, StoreBackendMongo:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendMemory:
		return "Memory (lost on exit)"
	case StoreBackendSQLite:
		return "SQLite (local file, FTS5 ranking)"
	case StoreBackendMongo:
		return "MongoDB (network, text index ranking)"
	default:
		return unknownDescription
	}
}

// ReaderBackend selects the answer extraction implementation.
type ReaderBackend string

// Available reader backends.
const (
	// ReaderBackendExtractive scores sentences locally by query term coverage.
	ReaderBackendExtractive ReaderBackend = "extractive"

	// ReaderBackendHuggingFace calls an extractive QA inference endpoint.
	ReaderBackendHuggingFace ReaderBackend = "huggingface"
)

// IsValid returns true if the backend is recognised.
func (b ReaderBackend) IsValid() bool {
	return b == ReaderBackendExtractive || b == ReaderBackendHuggingFace
}

// String returns the string representation.
func (b ReaderBackend) String() string {
	return string(b)
}

// LinkSource selects which passage supplies the useful links of an answer.
type LinkSource string

// Available link sources.
const (
	// LinkSourceAnswer takes links from the passage the answer came from.
	LinkSourceAnswer LinkSource = "answer"

	// LinkSourceFirstRetrieved takes links from the top-ranked retrieved passage.
	LinkSourceFirstRetrieved LinkSource = "first_retrieved"
)

// IsValid returns true if the link source is recognised.
func (s LinkSource) IsValid() bool {
	return s == LinkSourceAnswer || s == LinkSourceFirstRetrieved
}

// String returns the string representation.
func (s LinkSource) String() string {
	return string(s)
}

// PDFBackend selects the PDF text extraction implementation.
type PDFBackend string

// Available PDF backends.
const (
	// PDFBackendPdftotext shells out to poppler's pdftotext.
	PDFBackendPdftotext PDFBackend = "pdftotext"

	// PDFBackendUniPDF uses the unipdf library; requires a licence key.
	PDFBackendUniPDF PDFBackend = "unipdf"
)

// IsValid returns true if the backend is recognised.
func (b PDFBackend) IsValid() bool {
	return b == PDFBackendPdftotext || b == PDFBackendUniPDF
}

// StoreSettings configures the passage store.
type StoreSettings struct {
	Backend       StoreBackend
	SQLiteDir     string
	MongoURI      string
	MongoDatabase string
}

// PreprocessSettings configures cleaning and chunking.
type PreprocessSettings struct {
	// SplitLength is the maximum number of words per passage.
	SplitLength int

	// SplitOverlap is the number of words shared by consecutive passages.
	SplitOverlap int

	// HeaderFooterLines is how many edge lines per page are header/footer candidates.
	HeaderFooterLines int
}

// QASettings configures the retrieve-then-read pipeline.
type QASettings struct {
	RetrieverTopK int
	ReaderTopK    int
	LinkSource    LinkSource
}

// ReaderSettings configures answer extraction.
type ReaderSettings struct {
	Backend       ReaderBackend
	Endpoint      string
	APIToken      string
	ContextWindow int
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string

	// RateLimit is the sustained requests per second; zero disables limiting.
	RateLimit float64
	RateBurst int
}

// ExtractSettings configures text extraction.
type ExtractSettings struct {
	PDFBackend       PDFBackend
	UniDocLicenseKey string
}

// Settings holds all application settings.
type Settings struct {
	Store      StoreSettings
	Preprocess PreprocessSettings
	QA         QASettings
	Reader     ReaderSettings
	Server     ServerSettings
	Extract    ExtractSettings

	// UploadsDir is where uploaded files are staged.
	UploadsDir string
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Store: StoreSettings{
			Backend:       StoreBackendSQLite,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "lectern",
		},
		Preprocess: PreprocessSettings{
			SplitLength:       500,
			SplitOverlap:      50,
			HeaderFooterLines: 2,
		},
		QA: QASettings{
			RetrieverTopK: 3,
			ReaderTopK:    1,
			LinkSource:    LinkSourceAnswer,
		},
		Reader: ReaderSettings{
			Backend:       ReaderBackendExtractive,
			Endpoint:      "https://api-inference.huggingface.co/models/deepset/roberta-base-squad2",
			ContextWindow: 150,
		},
		Server: ServerSettings{
			Addr:      ":8000",
			RateLimit: 10,
			RateBurst: 20,
		},
		Extract: ExtractSettings{
			PDFBackend: PDFBackendPdftotext,
		},
		UploadsDir: "uploads",
	}
}

// AllStoreBackends returns all available store backends.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{StoreBackendMemory, StoreBackendSQLite, StoreBackendMongo}
}
