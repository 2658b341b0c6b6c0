package runner

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/commitgate/commitgate/commit"
)

// Stats holds counts describing a batch of analyzed commits, grouped
// into buckets like commit type and release type.
type Stats struct {
	Commits int64                   `json:"commits"`
	Counts  map[string][]*statCount `json:"counts"`
}

type statCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Stats tallies acs by commit type, scope, release type and validity.
func (r *Runner) Stats(acs commit.AnalyzedCommits) *Stats {
	stats := &Stats{
		Commits: int64(len(acs)),
		Counts:  make(map[string][]*statCount),
	}
	for _, ac := range acs {
		if !ac.Valid {
			stats.add("valid", "no", 1)
			continue
		}
		stats.add("valid", "yes", 1)
		stats.add("commit_type", ac.CommitType, 1)
		stats.add("scope", ac.Scope, 1)
		stats.add("release_type", ac.ReleaseType.String(), 1)
	}
	return stats
}

func (s *Stats) add(bucket, name string, n int64) {
	if name == "" {
		name = "n/a"
	}
	if sc := s.findCount(bucket, name); sc != nil {
		sc.Count += n
		return
	}
	s.Counts[bucket] = append(s.Counts[bucket], &statCount{Name: name, Count: n})
}

func (s *Stats) findCount(bucket, name string) *statCount {
	for _, sc := range s.Counts[bucket] {
		if sc.Name == name {
			return sc
		}
	}
	return nil
}

func (s *Stats) sortedBuckets() []string {
	buckets := make([]string, 0, len(s.Counts))
	for bucket := range s.Counts {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)
	return buckets
}

// TextSummary writes the stats for humans.
func (s *Stats) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d commits\n", s.Commits)
	for _, bucket := range s.sortedBuckets() {
		counts := s.Counts[bucket]
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].Count != counts[j].Count {
				return counts[i].Count > counts[j].Count
			}
			return counts[i].Name < counts[j].Name
		})

		fmt.Fprintf(bw, "\n%s:\n", toTitle(bucket))
		for _, sc := range counts {
			fmt.Fprintf(bw, "%20s  %d\n", sc.Name, sc.Count)
		}
	}
	return bw.Flush()
}

var nonAlphaRE = regexp.MustCompile(`[^A-Za-z]`)

func toTitle(s string) string {
	s = nonAlphaRE.ReplaceAllLiteralString(s, " ")
	return cases.Title(language.English).String(s)
}
