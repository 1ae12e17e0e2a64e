package repository

// Option configures a catalogue Source built by New.
type Option func(*options)

type options struct {
	table string
}

// WithTable sets the SQLite table holding the tracks.
func WithTable(table string) Option {
	return func(o *options) {
		if table != "" {
			o.table = table
		}
	}
}
