package entity

import "sort"

// Summary counts matches, overall and per extension
type Summary struct {
	Count       int
	TotalSize   int64
	ByExtension map[string]int
}

// NewSummary creates an empty Summary
func NewSummary() *Summary {
	return &Summary{ByExtension: map[string]int{}}
}

// Add counts one match. Directories don't add to the total size.
func (s *Summary) Add(m Match) {
	s.Count++
	if !m.IsDir {
		s.TotalSize += m.Size
	}
	s.ByExtension[m.Extension]++
}

// Extensions returns the extensions seen, most frequent first
func (s *Summary) Extensions() []string {
	extensions := make([]string, 0, len(s.ByExtension))
	for ext := range s.ByExtension {
		extensions = append(extensions, ext)
	}
	sort.Slice(extensions, func(i, j int) bool {
		ci, cj := s.ByExtension[extensions[i]], s.ByExtension[extensions[j]]
		if ci != cj {
			return ci > cj
		}
		return extensions[i] < extensions[j]
	})
	return extensions
}
