package cache

import (
	"sync"
	"time"

	"github.com/flavr-travel/flavr-backend/internal/app/model"
	"github.com/flavr-travel/flavr-backend/internal/app/repository"
	"github.com/flavr-travel/flavr-backend/pkg/logger"
)

// Store is the in-memory copy of every dashboard collection. It is loaded
// in bulk and re-loaded in full after every mutation; there are no
// incremental cache updates. A single Store instance is created at startup
// and passed to whoever needs to read it.
//
// Collections are swapped in all-or-nothing: when any of the five fetches
// fails, the previous collections stay in place untouched, so readers never
// observe a cache that mixes old and new state.
type Store struct {
	mu            sync.RWMutex
	loading       bool
	lastRefreshed time.Time

	destinations    []model.Destination
	recommendations []model.Recommendation
	people          []model.Person
	blogPosts       []model.BlogPost
	subscribers     []model.NewsletterSubscriber

	destinationRepo    repository.DestinationRepository
	recommendationRepo repository.RecommendationRepository
	personRepo         repository.PersonRepository
	blogPostRepo       repository.BlogPostRepository
	subscriberRepo     repository.SubscriberRepository
}

// Snapshot is a consistent point-in-time copy of all five collections.
type Snapshot struct {
	Destinations    []model.Destination          `json:"destinations"`
	Recommendations []model.Recommendation       `json:"recommendations"`
	People          []model.Person               `json:"people"`
	BlogPosts       []model.BlogPost             `json:"blog_posts"`
	Subscribers     []model.NewsletterSubscriber `json:"subscribers"`
	LastRefreshed   time.Time                    `json:"last_refreshed"`
}

func NewStore(
	destinationRepo repository.DestinationRepository,
	recommendationRepo repository.RecommendationRepository,
	personRepo repository.PersonRepository,
	blogPostRepo repository.BlogPostRepository,
	subscriberRepo repository.SubscriberRepository,
) *Store {
	return &Store{
		destinationRepo:    destinationRepo,
		recommendationRepo: recommendationRepo,
		personRepo:         personRepo,
		blogPostRepo:       blogPostRepo,
		subscriberRepo:     subscriberRepo,
	}
}

// Refresh re-fetches all five collections from the database and swaps them
// in atomically. On any fetch error the cache keeps its previous contents
// and the error is returned.
func (s *Store) Refresh() error {
	s.setLoading(true)
	defer s.setLoading(false)

	started := time.Now()

	destinations, err := s.destinationRepo.FindAll()
	if err != nil {
		logger.Error("Cache refresh failed fetching destinations", err, nil)
		return err
	}

	recommendations, err := s.recommendationRepo.FindAll()
	if err != nil {
		logger.Error("Cache refresh failed fetching recommendations", err, nil)
		return err
	}

	people, err := s.personRepo.FindAll()
	if err != nil {
		logger.Error("Cache refresh failed fetching people", err, nil)
		return err
	}

	blogPosts, err := s.blogPostRepo.FindAll()
	if err != nil {
		logger.Error("Cache refresh failed fetching blog posts", err, nil)
		return err
	}

	subscribers, err := s.subscriberRepo.FindAll()
	if err != nil {
		logger.Error("Cache refresh failed fetching newsletter subscribers", err, nil)
		return err
	}

	s.mu.Lock()
	s.destinations = destinations
	s.recommendations = recommendations
	s.people = people
	s.blogPosts = blogPosts
	s.subscribers = subscribers
	s.lastRefreshed = time.Now()
	s.mu.Unlock()

	logger.Debug("Cache refreshed", map[string]interface{}{
		"destinations":    len(destinations),
		"recommendations": len(recommendations),
		"people":          len(people),
		"blog_posts":      len(blogPosts),
		"subscribers":     len(subscribers),
		"duration_ms":     time.Since(started).Milliseconds(),
	})
	return nil
}

// Snapshot returns a copy of every collection. The slices are copied so
// callers can range over them without holding any lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Destinations:    append([]model.Destination(nil), s.destinations...),
		Recommendations: append([]model.Recommendation(nil), s.recommendations...),
		People:          append([]model.Person(nil), s.people...),
		BlogPosts:       append([]model.BlogPost(nil), s.blogPosts...),
		Subscribers:     append([]model.NewsletterSubscriber(nil), s.subscribers...),
		LastRefreshed:   s.lastRefreshed,
	}
}

// Destinations returns a copy of the cached destination collection.
func (s *Store) Destinations() []model.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Destination(nil), s.destinations...)
}

// Recommendations returns a copy of the cached recommendation collection.
func (s *Store) Recommendations() []model.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Recommendation(nil), s.recommendations...)
}

// People returns a copy of the cached people collection.
func (s *Store) People() []model.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Person(nil), s.people...)
}

// BlogPosts returns a copy of the cached blog post collection.
func (s *Store) BlogPosts() []model.BlogPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.BlogPost(nil), s.blogPosts...)
}

// Subscribers returns a copy of the cached subscriber collection.
func (s *Store) Subscribers() []model.NewsletterSubscriber {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.NewsletterSubscriber(nil), s.subscribers...)
}

// Loading reports whether a refresh is currently in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastRefreshed returns the completion time of the last successful refresh.
func (s *Store) LastRefreshed() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefreshed
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}
