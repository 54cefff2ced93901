package vocab

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/semshift/semshift/internal"
	"github.com/semshift/semshift/pkg/models"
)

var log = internal.GetLogger()

// fallbackWords is used when no word source file is present. It must
// contain no duplicates.
var fallbackWords = []string{
	"garden", "gardening",
	"belief", "believing",
	"work", "working",
	"run", "running",
	"paint", "painting",
	"teach", "teaching",
	"write", "writing",
	"build", "building",
	"think", "thinking",
	"speak", "speaking",
}

// Store loads the working vocabulary from a line-delimited word source.
// Each line is either a bare word or "word<TAB>pos"; the POS column is
// kept as per-word metadata. A missing file is not an error and falls
// back to the built-in list; any other read failure is fatal at startup.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load() (*models.Vocabulary, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warnf("vocabulary source %s not found, using built-in list", s.path)
			return buildVocabulary(fallbackWords, nil), nil
		}
		return nil, models.NewConfigurationError("unable to read vocabulary source "+s.path, err)
	}
	defer file.Close()

	var words []string
	pos := make(map[string]string)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		word, tag, found := strings.Cut(line, "\t")
		words = append(words, word)
		if found {
			pos[word] = tag
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, models.NewConfigurationError("error reading vocabulary source "+s.path, err)
	}

	v := buildVocabulary(words, pos)
	log.Infof("loaded %d vocabulary words from %s", v.Len(), s.path)
	return v, nil
}

// buildVocabulary deduplicates preserving first-seen order. Order is the
// matrix row order and feeds the cache signature, so it must be stable.
func buildVocabulary(words []string, pos map[string]string) *models.Vocabulary {
	seen := make(map[string]struct{}, len(words))
	entries := make([]models.VocabEntry, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		entries = append(entries, models.VocabEntry{Word: w, POS: pos[w]})
	}
	return &models.Vocabulary{Entries: entries}
}
