// Package session keeps per-visitor bounded logs: the cart, browsing history
// and search history.
package session

const (
	Cart     = "cart"
	Browsing = "browsing"
	Searches = "searches"
)

var limits = map[string]int{
	Cart:     50,
	Browsing: 50,
	Searches: 20,
}

// Names lists every log a visitor owns.
var Names = []string{Cart, Browsing, Searches}

// Limit returns the capacity of a named log, or 0 when the name is unknown.
func Limit(name string) int {
	return limits[name]
}

type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Log is an ordered list of unique keys, oldest first, capped at Limit
// entries. Putting an existing key moves it to the newest position.
type Log struct {
	Limit   int
	entries []Entry
}

func NewLog(limit int, entries ...Entry) *Log {
	l := &Log{Limit: limit}
	for _, e := range entries {
		l.Put(e.Key, e.Value)
	}
	return l
}

func (l *Log) index(key string) int {
	for i, e := range l.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

func (l *Log) Put(key, value string) {
	if i := l.index(key); i >= 0 {
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
	}
	l.entries = append(l.entries, Entry{Key: key, Value: value})
	if l.Limit > 0 && len(l.entries) > l.Limit {
		l.entries = append([]Entry(nil), l.entries[len(l.entries)-l.Limit:]...)
	}
}

func (l *Log) Get(key string) (string, bool) {
	if i := l.index(key); i >= 0 {
		return l.entries[i].Value, true
	}
	return "", false
}

func (l *Log) Remove(key string) bool {
	i := l.index(key)
	if i < 0 {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return true
}

// Entries returns a copy, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Recent returns up to n entries, newest first. n <= 0 means all of them.
func (l *Log) Recent(n int) []Entry {
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(l.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

func (l *Log) Len() int { return len(l.entries) }

func (l *Log) Clear() { l.entries = nil }
