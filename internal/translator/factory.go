package translator

import (
	"fmt"
	"log/slog"
)

// Method names a translator variant in configuration.
type Method string

const (
	MethodSlidingWindowBing   Method = "sliding_window_bing"
	MethodSlidingWindowGoogle Method = "sliding_window_google"
	MethodDictionaryBing      Method = "dictionary_bing"
)

// Methods lists every supported variant.
var Methods = []Method{MethodSlidingWindowBing, MethodSlidingWindowGoogle, MethodDictionaryBing}

func (m Method) String() string { return string(m) }

func (m Method) IsValid() bool {
	switch m {
	case MethodSlidingWindowBing, MethodSlidingWindowGoogle, MethodDictionaryBing:
		return true
	}
	return false
}

// ClassName is the method id prefix of the variant.
func (m Method) ClassName() string {
	switch m {
	case MethodSlidingWindowBing:
		return "SlidingWindowBingTranslator"
	case MethodSlidingWindowGoogle:
		return "SlidingWindowGoogleTranslator"
	case MethodDictionaryBing:
		return "DictionaryBingTranslator"
	}
	return ""
}

// Provider is the external service the variant talks to.
func (m Method) Provider() string {
	if m == MethodSlidingWindowGoogle {
		return "google"
	}
	return "bing"
}

// DefaultPricePerMB is the provider list price per MiB of source text.
func (m Method) DefaultPricePerMB() float64 {
	if m.Provider() == "google" {
		return 20
	}
	return 10
}

// BingBackend is what the Bing client offers.
type BingBackend interface {
	PhraseTranslator
	DictionaryLookup
}

// Backends carries the service clients a variant may need. Only the one
// required by the selected method has to be set.
type Backends struct {
	Bing   BingBackend
	Google PhraseTranslator
}

// New builds the translator for method.
func New(method Method, opts Options, backends Backends, logger *slog.Logger) (Translator, error) {
	switch method {
	case MethodSlidingWindowBing:
		if backends.Bing == nil {
			return nil, fmt.Errorf("translator: %s requires a bing client", method)
		}
		return NewSlidingWindow(method.ClassName(), backends.Bing, opts, logger), nil
	case MethodSlidingWindowGoogle:
		if backends.Google == nil {
			return nil, fmt.Errorf("translator: %s requires a google client", method)
		}
		return NewSlidingWindow(method.ClassName(), backends.Google, opts, logger), nil
	case MethodDictionaryBing:
		if backends.Bing == nil {
			return nil, fmt.Errorf("translator: %s requires a bing client", method)
		}
		return NewDictionary(method.ClassName(), backends.Bing, opts.SourceLanguage, opts.TargetLanguage, logger), nil
	default:
		return nil, fmt.Errorf("translator: unsupported method %q", method)
	}
}
