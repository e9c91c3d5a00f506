package models

// Provenance records where a set of replacement candidates was inferred from.
type Provenance interface {
	provenance()
}

// FromMetadata means title and channel were still available from the catalog.
type FromMetadata struct{}

// FromHistory means the title was recovered from an archived snapshot.
type FromHistory struct {
	SnapshotURL string
	Timestamp   string
	Title       string // Normalized recovered title
}

func (FromMetadata) provenance() {}
func (FromHistory) provenance()  {}

// Result is the outcome of looking for alternatives to one unavailable video.
type Result interface {
	Subject() Video
	result()
}

// Success carries replacement candidates, possibly none.
type Success struct {
	Video      Video
	Candidates []Video
	Source     Provenance
	SearchErr  error // Set when at least one catalog search failed
}

// NotArchivedFailure means there was neither metadata nor an archived snapshot.
type NotArchivedFailure struct {
	Video Video
}

// NoTitleFailure means a snapshot exists but no title could be extracted from it.
type NoTitleFailure struct {
	Video       Video
	SnapshotURL string
}

func (r Success) Subject() Video            { return r.Video }
func (r NotArchivedFailure) Subject() Video { return r.Video }
func (r NoTitleFailure) Subject() Video     { return r.Video }

func (Success) result()            {}
func (NotArchivedFailure) result() {}
func (NoTitleFailure) result()     {}
