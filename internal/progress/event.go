// Package progress defines the tagged ProgressEvent union emitted by the
// supervisor, and parses single lines from the yt-dlp child according to
// the grammar in spec.md §4.3, ported from
// original_source/src/ytdlp.rs and src/ytdlp/parser.rs.
package progress

// Kind discriminates the ProgressEvent union.
type Kind int

const (
	KindStarting Kind = iota
	KindDownloading
	KindMoved
	KindStuck
	KindIdle
	KindHold
	KindQueueUpdate
)

// Event is the tagged union of everything the supervisor can emit to
// subscribers. Only the fields relevant to Kind are meaningful.
type Event struct {
	Kind Kind

	// Starting / Moved
	Title *string

	// Downloading
	DownloadedBytes uint64
	TotalBytes      *uint64
	FragIndex       *uint64
	FragCount       *uint64

	// Hold
	Reason string

	// QueueUpdate
	Queue []string
}

func Starting(title *string) Event { return Event{Kind: KindStarting, Title: normalizeTitle(title)} }
func Moved(title *string) Event    { return Event{Kind: KindMoved, Title: normalizeTitle(title)} }
func Stuck() Event                 { return Event{Kind: KindStuck} }
func Idle() Event                  { return Event{Kind: KindIdle} }
func Hold(reason string) Event     { return Event{Kind: KindHold, Reason: reason} }
func QueueUpdate(q []string) Event { return Event{Kind: KindQueueUpdate, Queue: q} }

func Downloading(downloaded uint64, total, fragIndex, fragCount *uint64) Event {
	return Event{
		Kind:            KindDownloading,
		DownloadedBytes: downloaded,
		TotalBytes:      total,
		FragIndex:       fragIndex,
		FragCount:       fragCount,
	}
}

// normalizeTitle maps the literal "NA" to an absent title.
func normalizeTitle(title *string) *string {
	if title != nil && *title == "NA" {
		return nil
	}
	return title
}

// Progress computes the clamped [0,1] completion fraction for a
// Downloading event, per spec.md §4.7's formula: average of the byte
// ratio and the fragment ratio when both are known, else whichever is
// known, else absent.
func (e Event) Progress() (float64, bool) {
	if e.Kind != KindDownloading {
		return 0, false
	}
	var byteRatio, fragRatio *float64
	if e.TotalBytes != nil && *e.TotalBytes > 0 {
		v := float64(e.DownloadedBytes) / float64(*e.TotalBytes)
		byteRatio = &v
	}
	if e.FragIndex != nil && e.FragCount != nil && *e.FragCount > 0 {
		v := float64(*e.FragIndex) / float64(*e.FragCount)
		fragRatio = &v
	}
	var value float64
	switch {
	case byteRatio != nil && fragRatio != nil:
		value = (*byteRatio + *fragRatio) / 2
	case byteRatio != nil:
		value = *byteRatio
	case fragRatio != nil:
		value = *fragRatio
	default:
		return 0, false
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	return value, true
}
