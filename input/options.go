package input

// Options controls how positional arguments and stdin are interpreted.
type Options struct {
	JSON      bool
	Form      bool
	Multipart bool

	// ReadStdin is set when stdin is redirected and --ignore-stdin is
	// absent; only then is stdin consulted for a raw body.
	ReadStdin bool

	// DefaultScheme is prepended to URLs that do not carry a scheme.
	DefaultScheme string
}
