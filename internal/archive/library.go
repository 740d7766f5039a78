package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/util"
)

var ErrPostNotFound = errors.New("archived post not found")

type ArchivedLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type archivedFrontMatter struct {
	Date       string         `yaml:"date"`
	Categories []string       `yaml:"categories"`
	Platforms  []ArchivedLink `yaml:"platforms"`
}

// ArchivedPost is a post folder read back from a local archive directory.
type ArchivedPost struct {
	Folder       string
	Slug         string
	Date         time.Time
	Categories   []string
	Platforms    []ArchivedLink
	Body         []byte
	Source       []byte
	ContentHash  string
	ModifiedDate time.Time
	Files        []string
}

// Library indexes the post folders of a local archive directory and keeps
// the index fresh by polling.
type Library struct {
	root string

	mu     sync.RWMutex
	posts  map[string]*ArchivedPost
	sorted []ArchivedPost

	reloadNotifier func(folder string)
}

func NewLibrary(root string) *Library {
	return &Library{
		root:  root,
		posts: make(map[string]*ArchivedPost),
	}
}

func (l *Library) Root() string {
	return l.root
}

func (l *Library) SetReloadNotifier(notifier func(folder string)) {
	l.reloadNotifier = notifier
}

func (l *Library) notifyReload(folder string) {
	if l.reloadNotifier != nil {
		l.reloadNotifier(folder)
	}
}

func (l *Library) Init() error {
	posts, postMap, err := l.Scan()
	if err != nil {
		return err
	}
	l.set(posts, postMap)
	return nil
}

func (l *Library) set(posts []ArchivedPost, postMap map[string]*ArchivedPost) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sorted = posts
	l.posts = postMap
}

func (l *Library) List() []ArchivedPost {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sorted
}

func (l *Library) Get(folder string) (*ArchivedPost, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if post, ok := l.posts[folder]; ok {
		return post, nil
	}
	return nil, ErrPostNotFound
}

// Scan reads every folder under the root that contains a post.md, newest first.
func (l *Library) Scan() ([]ArchivedPost, map[string]*ArchivedPost, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, nil, err
	}

	var posts []ArchivedPost
	postMap := make(map[string]*ArchivedPost)
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		post, err := l.readPost(entry.Name())
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				archiveLogger.Warn().Err(err).Str("folder", entry.Name()).Msg("Skipping unreadable post folder")
			}
			continue
		}

		posts = append(posts, *post)
		postMap[post.Folder] = post
	}

	slices.SortStableFunc(posts, func(a, b ArchivedPost) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(b.Folder, a.Folder)
	})

	return posts, postMap, nil
}

func (l *Library) readPost(folder string) (*ArchivedPost, error) {
	dir := filepath.Join(l.root, folder)
	source, err := os.ReadFile(filepath.Join(dir, config.PostFileName))
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(filepath.Join(dir, config.PostFileName))
	if err != nil {
		return nil, err
	}

	post := &ArchivedPost{
		Folder:       folder,
		Slug:         folderSlug(folder),
		Body:         source,
		Source:       source,
		ContentHash:  util.ContentHash(source),
		ModifiedDate: info.ModTime(),
		Date:         info.ModTime(),
	}

	var fm archivedFrontMatter
	if body, err := util.ParseFrontMatter(source, &fm); err != nil {
		archiveLogger.Debug().Err(err).Str("folder", folder).Msg("Post has no readable front matter")
	} else {
		post.Body = body
		post.Categories = fm.Categories
		post.Platforms = fm.Platforms
		if date, err := time.Parse(time.RFC3339Nano, fm.Date); err == nil {
			post.Date = date
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() && e.Name() != config.PostFileName {
			post.Files = append(post.Files, e.Name())
		}
	}

	return post, nil
}

// folderSlug strips the leading YYYY-MM-DD- from a folder name.
func folderSlug(folder string) string {
	const datePrefix = len("2006-01-02-")
	if len(folder) >= datePrefix {
		if _, err := time.Parse("2006-01-02", folder[:datePrefix-1]); err == nil && folder[datePrefix-1] == '-' {
			return folder[datePrefix:]
		}
	}
	return folder
}

// Refresh rescans the root and notifies for every added, changed or removed folder.
func (l *Library) Refresh() error {
	posts, postMap, err := l.Scan()
	if err != nil {
		return err
	}

	l.mu.RLock()
	old := l.posts
	l.mu.RUnlock()

	var changed []string
	for folder, post := range postMap {
		if prev, ok := old[folder]; !ok || prev.ContentHash != post.ContentHash {
			changed = append(changed, folder)
		}
	}
	for folder := range old {
		if _, ok := postMap[folder]; !ok {
			changed = append(changed, folder)
		}
	}

	l.set(posts, postMap)

	for _, folder := range changed {
		archiveLogger.Info().Str("folder", folder).Msg("Archive folder changed")
		l.notifyReload(folder)
	}
	return nil
}

// Watch refreshes the library every interval until ctx is done.
func (l *Library) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.Refresh(); err != nil {
				archiveLogger.Error().Err(err).Msg("Error reloading archive library")
			}
		}
	}
}
