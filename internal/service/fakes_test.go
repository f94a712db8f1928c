package service

import (
	"sort"
	"time"

	"fittrack/backend/internal/models"
)

// recordingSink captures fan-out events so tests can assert on them.
type recordingSink struct {
	events []Event
}

func (r *recordingSink) Notify(ev Event) error {
	// Mirror the notifier's self-notification rule so service tests see
	// the same fan-out a real deployment would.
	if ev.RecipientID == ev.ActorID {
		return nil
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingSink) ofType(t models.NotificationType) []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// fakeFriendStore is an in-memory FriendStore.
type fakeFriendStore struct {
	nextID      uint
	requests    map[uint]*models.FriendRequest
	friendships map[[2]uint]bool
}

func newFakeFriendStore() *fakeFriendStore {
	return &fakeFriendStore{
		nextID:      1,
		requests:    make(map[uint]*models.FriendRequest),
		friendships: make(map[[2]uint]bool),
	}
}

func pairKey(a, b uint) [2]uint {
	if a > b {
		a, b = b, a
	}
	return [2]uint{a, b}
}

func (f *fakeFriendStore) RequestByPair(fromID, toID uint) (*models.FriendRequest, error) {
	for _, req := range f.requests {
		if req.FromID == fromID && req.ToID == toID {
			return req, nil
		}
	}
	return nil, nil
}

func (f *fakeFriendStore) RequestByID(id uint) (*models.FriendRequest, error) {
	return f.requests[id], nil
}

func (f *fakeFriendStore) CreateRequest(req *models.FriendRequest) error {
	req.ID = f.nextID
	f.nextID++
	f.requests[req.ID] = req
	return nil
}

func (f *fakeFriendStore) UpdateRequestStatus(id uint, status models.RequestStatus) error {
	f.requests[id].Status = status
	return nil
}

func (f *fakeFriendStore) AcceptRequest(req *models.FriendRequest) error {
	f.requests[req.ID].Status = models.RequestAccepted
	f.friendships[pairKey(req.FromID, req.ToID)] = true
	return nil
}

func (f *fakeFriendStore) FriendshipByPair(userID, otherID uint) (*models.Friendship, error) {
	if !f.friendships[pairKey(userID, otherID)] {
		return nil, nil
	}
	key := pairKey(userID, otherID)
	return &models.Friendship{UserAID: key[0], UserBID: key[1]}, nil
}

func (f *fakeFriendStore) DeleteFriendship(userID, otherID uint) (bool, error) {
	key := pairKey(userID, otherID)
	if !f.friendships[key] {
		return false, nil
	}
	delete(f.friendships, key)
	return true, nil
}

func (f *fakeFriendStore) Friends(userID uint) ([]models.User, error) {
	var out []models.User
	for key := range f.friendships {
		if key[0] == userID || key[1] == userID {
			out = append(out, models.User{Name: "friend"})
		}
	}
	return out, nil
}

func (f *fakeFriendStore) PendingRequestsTo(userID uint) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, req := range f.requests {
		if req.ToID == userID && req.Status == models.RequestPending {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeMessageStore is an in-memory MessageStore.
type fakeMessageStore struct {
	nextID   uint
	now      time.Time
	messages []*models.Message
	users    map[uint]models.User
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{
		nextID: 1,
		now:    time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		users:  make(map[uint]models.User),
	}
}

func (f *fakeMessageStore) Create(msg *models.Message) error {
	msg.ID = f.nextID
	f.nextID++
	if msg.CreatedAt.IsZero() {
		f.now = f.now.Add(time.Second)
		msg.CreatedAt = f.now
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMessageStore) Thread(userID, peerID uint) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if (m.SenderID == userID && m.ReceiverID == peerID) ||
			(m.SenderID == peerID && m.ReceiverID == userID) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeMessageStore) MarkThreadRead(userID, peerID uint) error {
	for _, m := range f.messages {
		if m.SenderID == peerID && m.ReceiverID == userID {
			m.Read = true
		}
	}
	return nil
}

func (f *fakeMessageStore) LatestPerReceiver(senderID uint) ([]models.Message, error) {
	latest := make(map[uint]*models.Message)
	for _, m := range f.messages {
		if m.SenderID != senderID {
			continue
		}
		if cur, ok := latest[m.ReceiverID]; !ok || m.CreatedAt.After(cur.CreatedAt) {
			latest[m.ReceiverID] = m
		}
	}
	var out []models.Message
	for _, m := range latest {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMessageStore) LatestPerSender(receiverID uint) ([]models.Message, error) {
	latest := make(map[uint]*models.Message)
	for _, m := range f.messages {
		if m.ReceiverID != receiverID {
			continue
		}
		if cur, ok := latest[m.SenderID]; !ok || m.CreatedAt.After(cur.CreatedAt) {
			latest[m.SenderID] = m
		}
	}
	var out []models.Message
	for _, m := range latest {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMessageStore) UnreadCountsBySender(userID uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	for _, m := range f.messages {
		if m.ReceiverID == userID && !m.Read {
			counts[m.SenderID]++
		}
	}
	return counts, nil
}

func (f *fakeMessageStore) UnreadTotal(userID uint) (int64, error) {
	var total int64
	for _, m := range f.messages {
		if m.ReceiverID == userID && !m.Read {
			total++
		}
	}
	return total, nil
}

func (f *fakeMessageStore) ClearThread(userID, peerID uint) error {
	kept := f.messages[:0]
	for _, m := range f.messages {
		between := (m.SenderID == userID && m.ReceiverID == peerID) ||
			(m.SenderID == peerID && m.ReceiverID == userID)
		if !between {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return nil
}

func (f *fakeMessageStore) ClearAll(userID uint) error {
	kept := f.messages[:0]
	for _, m := range f.messages {
		if m.SenderID != userID && m.ReceiverID != userID {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return nil
}

func (f *fakeMessageStore) messagesInvolving(userID uint) []*models.Message {
	var out []*models.Message
	for _, m := range f.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeMessageStore) Users(ids []uint) (map[uint]models.User, error) {
	out := make(map[uint]models.User, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// fakePostStore is an in-memory PostStore.
type fakePostStore struct {
	nextID   uint
	posts    map[uint]*models.Post
	likes    map[uint]*models.Like
	comments map[uint]*models.Comment
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{
		nextID:   1,
		posts:    make(map[uint]*models.Post),
		likes:    make(map[uint]*models.Like),
		comments: make(map[uint]*models.Comment),
	}
}

func (f *fakePostStore) addPost(ownerID uint) *models.Post {
	post := &models.Post{UserID: ownerID}
	post.ID = f.nextID
	f.nextID++
	f.posts[post.ID] = post
	return post
}

func (f *fakePostStore) Post(id uint) (*models.Post, error) {
	return f.posts[id], nil
}

func (f *fakePostStore) Like(userID, postID uint) (*models.Like, error) {
	for _, like := range f.likes {
		if like.UserID == userID && like.PostID == postID {
			return like, nil
		}
	}
	return nil, nil
}

func (f *fakePostStore) CreateLike(like *models.Like) error {
	like.ID = f.nextID
	f.nextID++
	f.likes[like.ID] = like
	return nil
}

func (f *fakePostStore) DeleteLike(id uint) error {
	delete(f.likes, id)
	return nil
}

func (f *fakePostStore) CreateComment(comment *models.Comment) error {
	comment.ID = f.nextID
	f.nextID++
	f.comments[comment.ID] = comment
	return nil
}
