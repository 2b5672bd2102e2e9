package takes

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//ErrSubjectNotFound is returned when metadata holds no entry for a subject
var ErrSubjectNotFound = errors.New("subject not found in metadata")

//Move is the metadata of one take
type Move struct {
	Description string `mapstructure:"description"`
	Flags30     []int  `mapstructure:"flags30"`  //video frames range [start, end], 30 fps
	Flags120    []int  `mapstructure:"flags120"` //MoCap frames range [start, end], 120 fps
}

//Subject is the typed metadata of one recorded subject
type Subject struct {
	Key   string    //metadata key it was parsed from (e.g. 'subject_1_f')
	ID    int       `mapstructure:"subject"`
	Betas []float64 `mapstructure:"betas"` //body shape parameters
	Moves []Move    `mapstructure:"moves"`
}

//VideoIndex returns the validated takes ranges in video frames
func (s *Subject) VideoIndex() (Index, error) {
	idx, err := movesIndex(s.Moves, func(m Move) []int { return m.Flags30 })
	return idx, errors.Wrapf(err, "subject %d video ranges", s.ID)
}

//MocapIndex returns the validated takes ranges in MoCap frames
func (s *Subject) MocapIndex() (Index, error) {
	idx, err := movesIndex(s.Moves, func(m Move) []int { return m.Flags120 })
	return idx, errors.Wrapf(err, "subject %d mocap ranges", s.ID)
}

func movesIndex(moves []Move, flags func(Move) []int) (Index, error) {
	pairs := make([][2]int, len(moves))
	for i, m := range moves {
		f := flags(m)
		if len(f) != 2 {
			return nil, errors.Wrapf(ErrInvalidRanges, "take %d range has %d values, want 2", i+1, len(f))
		}
		pairs[i] = [2]int{f[0], f[1]}
	}
	return FromPairs(pairs)
}

//Catalog holds metadata of all subjects, read from one yaml/json/toml file.
type Catalog struct {
	v *viper.Viper
}

//LoadCatalog reads metadata file from given path. Format is chosen by file extension.
func LoadCatalog(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "could not read metadata file '%s'", path)
	}
	return &Catalog{v: v}, nil
}

//NewCatalog wraps an already populated viper instance
func NewCatalog(v *viper.Viper) *Catalog {
	return &Catalog{v: v}
}

//Keys returns top level subject keys, sorted
func (c *Catalog) Keys() []string {
	seen := make(map[string]bool)
	for _, k := range c.v.AllKeys() {
		seen[strings.SplitN(k, ".", 2)[0]] = true
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

//Subject finds the first key (in sorted order) starting with given prefix and parses it to a Subject.
//Prefix matching is case insensitive since viper lower cases keys.
func (c *Catalog) Subject(prefix string) (*Subject, error) {
	prefix = strings.ToLower(prefix)
	for _, k := range c.Keys() {
		if strings.HasPrefix(k, prefix) {
			return ParseSubject(c.v, k)
		}
	}
	return nil, errors.Wrapf(ErrSubjectNotFound, "no key with prefix '%s'", prefix)
}

//ParseSubject decodes metadata under given key and validates both ranges lists
func ParseSubject(v *viper.Viper, key string) (*Subject, error) {
	if !v.IsSet(key) {
		return nil, errors.Wrapf(ErrSubjectNotFound, "key '%s'", key)
	}

	s := &Subject{}
	if err := v.UnmarshalKey(key, s); err != nil {
		return nil, errors.Wrapf(err, "could not parse metadata of '%s'", key)
	}
	s.Key = key

	if _, err := s.VideoIndex(); err != nil {
		return nil, err
	}
	if _, err := s.MocapIndex(); err != nil {
		return nil, err
	}

	return s, nil
}

var subjectNumberRe = regexp.MustCompile(`(?i)subject_(\d+)`)

//SubjectPrefix extracts the metadata key prefix from a MoVi file name,
//e.g. 'F_PG1_Subject_1_L.avi' -> 'subject_1_'
func SubjectPrefix(name string) (string, bool) {
	m := subjectNumberRe.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	return "subject_" + strconv.Itoa(n) + "_", true
}
