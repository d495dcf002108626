package sbcs

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

type registryOptions struct {
	logger *zap.Logger
}

func defaultRegistryOptions() *registryOptions {
	return &registryOptions{
		logger: Logger(),
	}
}

type RegistryOption func(*registryOptions)

// WithLogger sets the logger used for registration events.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(o *registryOptions) {
		o.logger = l
	}
}

// Registry maps encoding names to built codecs.
//
// A Registry has two phases. While it is being initialized codecs are added
// with Register. Freeze ends that phase, after which the set of codecs never
// changes and Register fails with ErrRegistryFrozen. Lookups are valid in
// both phases.
type Registry struct {
	logger *zap.Logger

	mu      sync.RWMutex
	frozen  bool
	codecs  map[string]*Codec
	aliases map[string]string
}

func NewRegistry(opts ...RegistryOption) *Registry {
	o := defaultRegistryOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Registry{
		logger:  o.logger,
		codecs:  make(map[string]*Codec),
		aliases: make(map[string]string),
	}
}

// CanonicalName lowercases name, strips a trailing ":yyyy" year suffix and
// drops everything that is not an ASCII letter or digit, so that
// "ISO_8859-1:1987", "iso-8859-1" and "ISO 8859-1" all name the same
// encoding.
func CanonicalName(name string) string {
	if n := len(name); n >= 5 && name[n-5] == ':' && isDigits(name[n-4:]) {
		name = name[:n-5]
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, name)
}

func isDigits(s string) bool {
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Register builds a codec from def and makes it available under def.Name and
// every alias. Either all names are registered or none are.
func (r *Registry) Register(def Definition, aliases ...string) (*Codec, error) {
	name := CanonicalName(def.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, def.Name)
	}

	keys := make([]string, 0, len(aliases))
	for _, a := range aliases {
		k := CanonicalName(a)
		if k == "" {
			return nil, fmt.Errorf("%w: alias %q of %q", ErrInvalidName, a, def.Name)
		}
		if k == name || slices.Contains(keys, k) {
			continue
		}
		keys = append(keys, k)
	}

	c, err := New(def)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return nil, fmt.Errorf("%w: cannot register %q", ErrRegistryFrozen, def.Name)
	}

	for _, k := range append([]string{name}, keys...) {
		if r.taken(k) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEncoding, k)
		}
	}

	r.codecs[name] = c
	for _, k := range keys {
		r.aliases[k] = name
	}

	r.logger.Debug("registered codec",
		zap.String("name", name),
		zap.Strings("aliases", keys),
		zap.Bool("ascii_encode", c.asciiEncode),
		zap.Bool("ascii_decode", c.asciiDecode),
	)

	return c, nil
}

func (r *Registry) taken(k string) bool {
	if _, ok := r.codecs[k]; ok {
		return true
	}
	_, ok := r.aliases[k]
	return ok
}

// Freeze ends the registration phase. It is safe to call more than once.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return
	}
	r.frozen = true

	r.logger.Info("codec registry frozen",
		zap.Int("codecs", len(r.codecs)),
		zap.Int("aliases", len(r.aliases)),
	)
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.frozen
}

// Lookup returns the codec registered under name or one of its aliases.
func (r *Registry) Lookup(name string) (*Codec, error) {
	k := CanonicalName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if target, ok := r.aliases[k]; ok {
		k = target
	}

	if c, ok := r.codecs[k]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// Names returns the sorted canonical names of all registered codecs.
// Aliases are not included.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		names = append(names, k)
	}
	slices.Sort(names)

	return names
}

// EncodeString encodes s with the codec registered under name.
func (r *Registry) EncodeString(name, s string) ([]byte, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	return c.EncodeString(s), nil
}

// DecodeToString decodes b with the codec registered under name.
func (r *Registry) DecodeToString(name string, b []byte) (string, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return "", err
	}

	return c.DecodeToString(b), nil
}

var charmapAliases = map[*charmap.Charmap][]string{
	charmap.ISO8859_1:   {"latin1", "l1", "cp819"},
	charmap.ISO8859_2:   {"latin2", "l2"},
	charmap.ISO8859_5:   {"cyrillic"},
	charmap.Windows1250: {"cp1250"},
	charmap.Windows1251: {"cp1251"},
	charmap.Windows1252: {"cp1252"},
	charmap.CodePage437: {"cp437", "ibm437"},
	charmap.CodePage850: {"cp850", "ibm850"},
	charmap.CodePage866: {"cp866", "ibm866"},
	charmap.Macintosh:   {"mac", "macroman"},
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()

	for _, e := range charmap.All {
		cm, ok := e.(*charmap.Charmap)
		if !ok {
			continue
		}

		if _, err := r.Register(FromCharmap(cm, DefaultSubstitute), charmapAliases[cm]...); err != nil {
			r.logger.Warn("skipping charmap",
				zap.String("name", cm.String()),
				zap.Error(err),
			)
		}
	}

	r.Freeze()

	return r
})

// Default returns the frozen registry holding every single byte charmap
// provided by golang.org/x/text, all using DefaultSubstitute as their
// default byte. It is built on first use.
func Default() *Registry {
	return defaultRegistry()
}
