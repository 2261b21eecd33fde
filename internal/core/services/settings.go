package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/core/ports/driving"
	"github.com/custodia-labs/lectern/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// EnvPrefix prefixes environment overrides: store.backend is read from
// LECTERN_STORE_BACKEND.
const EnvPrefix = "LECTERN_"

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyStoreBackend       = "store.backend"
	keyStoreSQLiteDir     = "store.sqlite_dir"
	keyStoreMongoURI      = "store.mongo_uri"
	keyStoreMongoDatabase = "store.mongo_database"
	keySplitLength        = "preprocess.split_length"
	keySplitOverlap       = "preprocess.split_overlap"
	keyHeaderFooterLines  = "preprocess.header_footer_lines"
	keyRetrieverTopK      = "qa.retriever_top_k"
	keyReaderTopK         = "qa.reader_top_k"
	keyLinkSource         = "qa.link_source"
	keyReaderBackend      = "reader.backend"
	keyReaderEndpoint     = "reader.endpoint"
	keyReaderAPIToken     = "reader.api_token"
	keyReaderContext      = "reader.context_window"
	keyServerAddr         = "server.addr"
	keyServerRateLimit    = "server.rate_limit"
	keyServerRateBurst    = "server.rate_burst"
	keyUploadsDir         = "uploads.dir"
	keyPDFBackend         = "extract.pdf_backend"
	keyUniDocLicense      = "extract.unidoc_license_key"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
)

// keySpec describes how a key is parsed and which values are accepted.
type keySpec struct {
	kind valueKind
	min  float64
	// valid is nil for free-form strings.
	valid func(string) bool
}

var keySpecs = map[string]keySpec{
	keyStoreBackend:       {kind: kindString, valid: func(v string) bool { return domain.StoreBackend(v).IsValid() }},
	keyStoreSQLiteDir:     {kind: kindString},
	keyStoreMongoURI:      {kind: kindString},
	keyStoreMongoDatabase: {kind: kindString, valid: notBlank},
	keySplitLength:        {kind: kindInt, min: 1},
	keySplitOverlap:       {kind: kindInt, min: 0},
	keyHeaderFooterLines:  {kind: kindInt, min: 0},
	keyRetrieverTopK:      {kind: kindInt, min: 1},
	keyReaderTopK:         {kind: kindInt, min: 1},
	keyLinkSource:         {kind: kindString, valid: func(v string) bool { return domain.LinkSource(v).IsValid() }},
	keyReaderBackend:      {kind: kindString, valid: func(v string) bool { return domain.ReaderBackend(v).IsValid() }},
	keyReaderEndpoint:     {kind: kindString},
	keyReaderAPIToken:     {kind: kindString},
	keyReaderContext:      {kind: kindInt, min: 0},
	keyServerAddr:         {kind: kindString, valid: notBlank},
	keyServerRateLimit:    {kind: kindFloat, min: 0},
	keyServerRateBurst:    {kind: kindInt, min: 0},
	keyUploadsDir:         {kind: kindString, valid: notBlank},
	keyPDFBackend:         {kind: kindString, valid: func(v string) bool { return domain.PDFBackend(v).IsValid() }},
	keyUniDocLicense:      {kind: kindString},
}

func notBlank(v string) bool { return strings.TrimSpace(v) != "" }

// SettingsService resolves settings from defaults, the config store and
// LECTERN_* environment variables, in increasing order of precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current application settings. Values that fail
// validation fall back to their defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	d := domain.DefaultSettings()

	settings := &domain.Settings{
		Store: domain.StoreSettings{
			Backend:       domain.StoreBackend(s.getString(keyStoreBackend, string(d.Store.Backend))),
			SQLiteDir:     s.getString(keyStoreSQLiteDir, d.Store.SQLiteDir),
			MongoURI:      s.getString(keyStoreMongoURI, d.Store.MongoURI),
			MongoDatabase: s.getString(keyStoreMongoDatabase, d.Store.MongoDatabase),
		},
		Preprocess: domain.PreprocessSettings{
			SplitLength:       s.getInt(keySplitLength, d.Preprocess.SplitLength),
			SplitOverlap:      s.getInt(keySplitOverlap, d.Preprocess.SplitOverlap),
			HeaderFooterLines: s.getInt(keyHeaderFooterLines, d.Preprocess.HeaderFooterLines),
		},
		QA: domain.QASettings{
			RetrieverTopK: s.getInt(keyRetrieverTopK, d.QA.RetrieverTopK),
			ReaderTopK:    s.getInt(keyReaderTopK, d.QA.ReaderTopK),
			LinkSource:    domain.LinkSource(s.getString(keyLinkSource, string(d.QA.LinkSource))),
		},
		Reader: domain.ReaderSettings{
			Backend:       domain.ReaderBackend(s.getString(keyReaderBackend, string(d.Reader.Backend))),
			Endpoint:      s.getString(keyReaderEndpoint, d.Reader.Endpoint),
			APIToken:      s.getString(keyReaderAPIToken, d.Reader.APIToken),
			ContextWindow: s.getInt(keyReaderContext, d.Reader.ContextWindow),
		},
		Server: domain.ServerSettings{
			Addr:      s.getString(keyServerAddr, d.Server.Addr),
			RateLimit: s.getFloat(keyServerRateLimit, d.Server.RateLimit),
			RateBurst: s.getInt(keyServerRateBurst, d.Server.RateBurst),
		},
		Extract: domain.ExtractSettings{
			PDFBackend:       domain.PDFBackend(s.getString(keyPDFBackend, string(d.Extract.PDFBackend))),
			UniDocLicenseKey: s.getString(keyUniDocLicense, d.Extract.UniDocLicenseKey),
		},
		UploadsDir: s.getString(keyUploadsDir, d.UploadsDir),
	}

	return settings, nil
}

// Set validates value for key and persists it to the config store.
func (s *SettingsService) Set(key, value string) error {
	spec, ok := keySpecs[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseValue(spec, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every supported configuration key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(keySpecs))
	for k := range keySpecs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func parseValue(spec keySpec, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch spec.kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", value)
		}
		if float64(n) < spec.min {
			return nil, fmt.Errorf("must be at least %v", spec.min)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", value)
		}
		if f < spec.min {
			return nil, fmt.Errorf("must be at least %v", spec.min)
		}
		return f, nil
	default:
		if spec.valid != nil && !spec.valid(value) {
			return nil, fmt.Errorf("invalid value %q", value)
		}
		return value, nil
	}
}

// raw returns the environment override or the stored value for key.
func (s *SettingsService) raw(key string) (any, bool) {
	if v, ok := s.lookupEnv(EnvName(key)); ok {
		return v, true
	}
	if s.configStore == nil {
		return nil, false
	}
	return s.configStore.Get(key)
}

// resolve parses and validates the value for key, or returns def.
func (s *SettingsService) resolve(key string, def any) any {
	v, ok := s.raw(key)
	if !ok {
		return def
	}

	var text string
	switch val := v.(type) {
	case string:
		text = val
	case int:
		text = strconv.Itoa(val)
	case int64:
		text = strconv.FormatInt(val, 10)
	case float64:
		text = strconv.FormatFloat(val, 'f', -1, 64)
	default:
		text = fmt.Sprint(val)
	}

	parsed, err := parseValue(keySpecs[key], text)
	if err != nil {
		logger.Warn("setting %s: %v; using default", key, err)
		return def
	}
	return parsed
}

func (s *SettingsService) getString(key, def string) string {
	if v, ok := s.resolve(key, def).(string); ok {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	if v, ok := s.resolve(key, def).(int); ok {
		return v
	}
	return def
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	if v, ok := s.resolve(key, def).(float64); ok {
		return v
	}
	return def
}
