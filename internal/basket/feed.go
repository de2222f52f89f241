package basket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/auth"
	"github.com/appetiteclub/dinein/internal/callable"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/pkg"
	"github.com/appetiteclub/dinein/pkg/event"
)

const (
	subscriberBuffer     = 100
	historyPerRestaurant = 50
	keepaliveEvery       = 30 * time.Second
)

// FeedMessage is one kitchen event addressed to a restaurant's subscribers.
type FeedMessage struct {
	EventType    string
	RestaurantID string
	Sequence     uint64
	Data         []byte
}

// Feed fans kitchen events out to live subscribers per restaurant and keeps a
// short history for late joiners.
type Feed struct {
	subscriber pkg.Subscriber
	stream     pkg.Stream
	logger     logger.Logger

	mu          sync.RWMutex
	subscribers map[string]map[string]chan FeedMessage
	history     map[string][]FeedMessage
	seq         uint64
}

func NewFeed(subscriber pkg.Subscriber, stream pkg.Stream, log logger.Logger) *Feed {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Feed{
		subscriber:  subscriber,
		stream:      stream,
		logger:      log,
		subscribers: make(map[string]map[string]chan FeedMessage),
		history:     make(map[string][]FeedMessage),
	}
}

// Start replays retained events and then consumes new ones from the stream
// when one is configured. Without a stream it subscribes to live kitchen
// events on the core subscriber.
func (f *Feed) Start(ctx context.Context) error {
	if f.stream != nil {
		if err := f.replay(ctx); err != nil {
			f.logger.Info("kitchen event replay failed, starting with empty history", "error", err)
		}
		if err := f.stream.SubscribeStream(ctx, f.HandleStreamEvent); err != nil {
			return fmt.Errorf("cannot consume kitchen stream: %w", err)
		}
		return nil
	}

	if f.subscriber == nil {
		f.logger.Info("no event subscriber configured, kitchen feed only serves history")
		return nil
	}
	if err := f.subscriber.Subscribe(ctx, event.KitchenSubjects, f.HandleEvent); err != nil {
		return fmt.Errorf("cannot subscribe to kitchen events: %w", err)
	}
	return nil
}

func (f *Feed) replay(ctx context.Context) error {
	msgs, err := f.stream.Fetch(ctx, 0)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		if err := f.ingest(m.Data, m.Sequence, false); err != nil {
			f.logger.Debug("skipping replayed kitchen event", "error", err, "sequence", m.Sequence)
		}
	}
	f.logger.Info("kitchen events replayed", "count", len(msgs))
	return nil
}

// HandleEvent is the subscriber callback for kitchen subjects.
func (f *Feed) HandleEvent(ctx context.Context, msg []byte) error {
	if err := f.ingest(msg, 0, true); err != nil {
		f.logger.Errorf("cannot decode kitchen event: %v", err)
	}
	return nil
}

// HandleStreamEvent is the stream consumer callback. Messages already seen
// during replay are skipped by stream sequence.
func (f *Feed) HandleStreamEvent(ctx context.Context, msg pkg.StreamMessage) error {
	if err := f.ingest(msg.Data, msg.Sequence, true); err != nil {
		f.logger.Errorf("cannot decode kitchen event: %v", err)
	}
	return nil
}

func (f *Feed) ingest(data []byte, sequence uint64, live bool) error {
	var meta event.KitchenEventMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return err
	}
	if meta.RestaurantID == "" {
		return fmt.Errorf("kitchen event without restaurant_id")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case sequence == 0:
		f.seq++
		sequence = f.seq
	case sequence <= f.seq:
		return nil
	default:
		f.seq = sequence
	}

	m := FeedMessage{EventType: meta.EventType, RestaurantID: meta.RestaurantID, Sequence: sequence, Data: data}

	h := append(f.history[m.RestaurantID], m)
	if len(h) > historyPerRestaurant {
		h = h[len(h)-historyPerRestaurant:]
	}
	f.history[m.RestaurantID] = h

	if !live {
		return nil
	}
	for id, ch := range f.subscribers[m.RestaurantID] {
		select {
		case ch <- m:
		default:
			f.logger.Info("subscriber channel full, dropping event", "subscriber_id", id)
		}
	}
	return nil
}

// Subscribe registers a subscriber for restaurantID and returns its channel
// together with the retained history.
func (f *Feed) Subscribe(restaurantID, subscriberID string) (<-chan FeedMessage, []FeedMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()

	subs, ok := f.subscribers[restaurantID]
	if !ok {
		subs = make(map[string]chan FeedMessage)
		f.subscribers[restaurantID] = subs
	}

	ch := make(chan FeedMessage, subscriberBuffer)
	subs[subscriberID] = ch

	history := make([]FeedMessage, len(f.history[restaurantID]))
	copy(history, f.history[restaurantID])

	f.logger.Info("new feed subscriber", "subscriber_id", subscriberID, "restaurant_id", restaurantID)
	return ch, history
}

func (f *Feed) Unsubscribe(restaurantID, subscriberID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	subs := f.subscribers[restaurantID]
	if ch, ok := subs[subscriberID]; ok {
		close(ch)
		delete(subs, subscriberID)
		if len(subs) == 0 {
			delete(f.subscribers, restaurantID)
		}
	}
}

// Stop closes every subscriber channel.
func (f *Feed) Stop(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for restaurantID, subs := range f.subscribers {
		for id, ch := range subs {
			close(ch)
			delete(subs, id)
		}
		delete(f.subscribers, restaurantID)
	}
	return nil
}

// FeedHandler serves the kitchen feed of one restaurant as Server-Sent Events.
type FeedHandler struct {
	feed   *Feed
	staff  StaffAuthorizer
	logger logger.Logger
}

func NewFeedHandler(feed *Feed, staff StaffAuthorizer, log logger.Logger) *FeedHandler {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &FeedHandler{feed: feed, staff: staff, logger: log}
}

func (h *FeedHandler) RegisterRoutes(r chi.Router) {
	r.Get("/kitchen/{restaurantId}/feed", h.ServeHTTP)
}

func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := callable.RequestLogger(h.logger, r)
	ctx := r.Context()

	restaurantID, err := uuid.Parse(chi.URLParam(r, "restaurantId"))
	if err != nil {
		callable.RespondError(w, apperr.InvalidArgumentf("invalid restaurantId"))
		return
	}
	if h.staff != nil {
		if err := h.staff.RequireStaff(ctx, restaurantID, auth.CallerID(ctx)); err != nil {
			callable.RespondError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	subscriberID := uuid.New().String()
	events, history := h.feed.Subscribe(restaurantID.String(), subscriberID)
	defer h.feed.Unsubscribe(restaurantID.String(), subscriberID)

	fmt.Fprintf(w, ": connected\n\n")
	fmt.Fprintf(w, "retry: 2000\n\n")

	lastID := lastEventID(r)
	for _, m := range history {
		if m.Sequence > lastID {
			writeEvent(w, m)
		}
	}
	flush(w)

	ticker := time.NewTicker(keepaliveEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("feed client disconnected", "subscriber_id", subscriberID)
			return

		case <-ticker.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			flush(w)

		case m, ok := <-events:
			if !ok {
				return
			}
			writeEvent(w, m)
			flush(w)
		}
	}
}

func lastEventID(r *http.Request) uint64 {
	id, err := strconv.ParseUint(strings.TrimSpace(r.Header.Get("Last-Event-ID")), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func writeEvent(w http.ResponseWriter, m FeedMessage) {
	fmt.Fprintf(w, "id: %d\n", m.Sequence)
	if m.EventType != "" {
		fmt.Fprintf(w, "event: %s\n", m.EventType)
	}
	fmt.Fprintf(w, "data: %s\n\n", m.Data)
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
