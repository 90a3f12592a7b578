// Package seed provides helpers to create demo data for development and
// testing. Never run against production databases.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"gamehaven/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers   int
	NumReviews int
	NumBlogs   int
	Clean      bool
}

// DefaultOptions returns a reasonable development dataset size.
func DefaultOptions() Options {
	return Options{
		NumUsers:   25,
		NumReviews: 120,
		NumBlogs:   30,
	}
}

var catalog = []struct {
	Title     string
	Developer string
	Publisher string
}{
	{"Hollow Knight", "Team Cherry", "Team Cherry"},
	{"Celeste", "Maddy Makes Games", "Maddy Makes Games"},
	{"Hades", "Supergiant Games", "Supergiant Games"},
	{"Stardew Valley", "ConcernedApe", "ConcernedApe"},
	{"The Witcher 3: Wild Hunt", "CD Projekt Red", "CD Projekt"},
	{"Elden Ring", "FromSoftware", "Bandai Namco"},
	{"Portal 2", "Valve", "Valve"},
	{"Outer Wilds", "Mobius Digital", "Annapurna Interactive"},
	{"Disco Elysium", "ZA/UM", "ZA/UM"},
	{"Slay the Spire", "Mega Crit", "Mega Crit"},
	{"Factorio", "Wube Software", "Wube Software"},
	{"Baldur's Gate 3", "Larian Studios", "Larian Studios"},
	{"Sekiro: Shadows Die Twice", "FromSoftware", "Activision"},
	{"Terraria", "Re-Logic", "Re-Logic"},
	{"Subnautica", "Unknown Worlds", "Unknown Worlds"},
}

var blogCategories = []string{"news", "guides", "opinion", "retro", "indie"}

// Seeder populates the database with demo content.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// New creates a Seeder bound to the given DB.
func New(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run seeds the database. Existing content is removed first when
// opts.Clean is set.
func (s *Seeder) Run() error {
	if s.opts.Clean {
		if err := s.clean(); err != nil {
			return fmt.Errorf("failed to clean database: %w", err)
		}
	}

	users, err := s.createUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	games, err := s.createGames()
	if err != nil {
		return fmt.Errorf("failed to seed games: %w", err)
	}

	if err := s.createReviews(users, games); err != nil {
		return fmt.Errorf("failed to seed reviews: %w", err)
	}

	blogs, err := s.createBlogs(users)
	if err != nil {
		return fmt.Errorf("failed to seed blogs: %w", err)
	}

	if err := s.createComments(users, blogs); err != nil {
		return fmt.Errorf("failed to seed comments: %w", err)
	}

	if err := s.createFavorites(users, games); err != nil {
		return fmt.Errorf("failed to seed favorites: %w", err)
	}

	if err := s.createGroups(users); err != nil {
		return fmt.Errorf("failed to seed groups: %w", err)
	}

	log.Printf("Seed complete: %d users, %d games", len(users), len(games))
	return nil
}

func (s *Seeder) clean() error {
	tables := []interface{}{
		&models.Message{}, &models.ConversationParticipant{}, &models.Conversation{},
		&models.GroupMembership{}, &models.Group{},
		&models.Favorite{}, &models.Comment{}, &models.Blog{},
		&models.Review{}, &models.VerificationCode{},
		&models.Game{}, &models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) createUsers() ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!demo"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := []*models.User{
		{
			Username:   "admin",
			Email:      "admin@gamehaven.dev",
			Password:   string(hashed),
			IsAdmin:    true,
			IsVerified: true,
			Bio:        "Site administrator",
		},
		{
			Username:    "moderator",
			Email:       "moderator@gamehaven.dev",
			Password:    string(hashed),
			IsModerator: true,
			IsVerified:  true,
			Bio:         "Keeps the queues short",
		},
	}

	for i := 0; i < s.opts.NumUsers; i++ {
		users = append(users, &models.User{
			Username:   gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(10, 99)),
			Email:      gofakeit.Email(),
			Password:   string(hashed),
			Bio:        gofakeit.Sentence(8),
			Avatar:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			IsVerified: s.rng.Intn(10) > 1, // most demo users are verified
		})
	}

	if err := s.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Seeder) createGames() ([]*models.Game, error) {
	games := make([]*models.Game, 0, len(catalog))
	for _, entry := range catalog {
		release := gofakeit.DateRange(
			time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		)
		games = append(games, &models.Game{
			Title:       entry.Title,
			Description: gofakeit.Paragraph(1, 3, 8, "\n"),
			Developer:   entry.Developer,
			Publisher:   entry.Publisher,
			CoverImage:  fmt.Sprintf("https://picsum.photos/seed/%s/400/600", gofakeit.UUID()),
			ReleaseDate: &release,
		})
	}

	if err := s.db.Create(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Seeder) createReviews(users []*models.User, games []*models.Game) error {
	// One review per (user, game); pick unique pairs.
	type pair struct{ u, g uint }
	seen := map[pair]bool{}
	var reviews []*models.Review

	for len(reviews) < s.opts.NumReviews && len(seen) < len(users)*len(games) {
		user := users[s.rng.Intn(len(users))]
		game := games[s.rng.Intn(len(games))]
		p := pair{user.ID, game.ID}
		if seen[p] {
			continue
		}
		seen[p] = true

		reviews = append(reviews, &models.Review{
			GameID:    game.ID,
			UserID:    user.ID,
			Rating:    1 + s.rng.Intn(5),
			Text:      gofakeit.Paragraph(1, 2, 10, " "),
			Published: s.rng.Intn(10) > 2, // leave some in the moderation queue
			CreatedAt: s.pastTime(90),
		})
	}

	if len(reviews) == 0 {
		return nil
	}
	return s.db.Create(&reviews).Error
}

func (s *Seeder) createBlogs(users []*models.User) ([]*models.Blog, error) {
	var blogs []*models.Blog
	for i := 0; i < s.opts.NumBlogs; i++ {
		user := users[s.rng.Intn(len(users))]
		blogs = append(blogs, &models.Blog{
			UserID:    user.ID,
			Title:     gofakeit.Sentence(6),
			Content:   gofakeit.Paragraph(3, 4, 12, "\n\n"),
			Category:  blogCategories[s.rng.Intn(len(blogCategories))],
			ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/800/400", gofakeit.UUID()),
			Published: s.rng.Intn(10) > 2,
			CreatedAt: s.pastTime(60),
		})
	}

	if err := s.db.Create(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (s *Seeder) createComments(users []*models.User, blogs []*models.Blog) error {
	var comments []*models.Comment
	for _, blog := range blogs {
		if !blog.Published {
			continue
		}
		for i := 0; i < s.rng.Intn(6); i++ {
			user := users[s.rng.Intn(len(users))]
			comments = append(comments, &models.Comment{
				BlogID:    blog.ID,
				UserID:    user.ID,
				Content:   gofakeit.Sentence(12),
				CreatedAt: blog.CreatedAt.Add(time.Duration(1+s.rng.Intn(72)) * time.Hour),
			})
		}
	}

	if len(comments) == 0 {
		return nil
	}
	return s.db.Create(&comments).Error
}

func (s *Seeder) createFavorites(users []*models.User, games []*models.Game) error {
	var favorites []*models.Favorite
	for _, user := range users {
		count := s.rng.Intn(5)
		perm := s.rng.Perm(len(games))
		for i := 0; i < count && i < len(perm); i++ {
			favorites = append(favorites, &models.Favorite{
				UserID: user.ID,
				GameID: games[perm[i]].ID,
			})
		}
	}

	if len(favorites) == 0 {
		return nil
	}
	return s.db.Create(&favorites).Error
}

func (s *Seeder) createGroups(users []*models.User) error {
	names := []string{"Speedrunners", "Indie Spotlight", "Co-op Nights", "Retro Corner"}
	for _, name := range names {
		owner := users[s.rng.Intn(len(users))]
		group := &models.Group{
			Name:        name,
			Slug:        slugify(name),
			Description: gofakeit.Sentence(10),
			OwnerID:     owner.ID,
		}
		if err := s.db.Create(group).Error; err != nil {
			return err
		}

		members := []*models.GroupMembership{
			{GroupID: group.ID, UserID: owner.ID, Role: models.GroupRoleOwner},
		}
		perm := s.rng.Perm(len(users))
		for i := 0; i < 3+s.rng.Intn(6) && i < len(perm); i++ {
			if users[perm[i]].ID == owner.ID {
				continue
			}
			members = append(members, &models.GroupMembership{
				GroupID: group.ID,
				UserID:  users[perm[i]].ID,
				Role:    models.GroupRoleMember,
			})
		}
		if err := s.db.Create(&members).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	days := s.rng.Intn(maxDays)
	hours := s.rng.Intn(24)
	return time.Now().Add(-time.Duration(days)*24*time.Hour - time.Duration(hours)*time.Hour)
}

func slugify(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '-')
		}
	}
	return string(out)
}
