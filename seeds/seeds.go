package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
)

const (
	seedUserCount = 20
	// users above this ID get no ratings and exercise the popularity path
	ratedUserCount = 16
)

type seedMovie struct {
	title    string
	imdbID   string
	genre    string
	year     int
	imdb     float64
	rt       float64
	actors   string
	synopsis string
}

var catalogue = []seedMovie{
	{"The Shawshank Redemption", "tt0111161", "Drama", 1994, 9.3, 91, "Tim Robbins, Morgan Freeman", "Two imprisoned men bond over a number of years."},
	{"The Godfather", "tt0068646", "Drama", 1972, 9.2, 97, "Marlon Brando, Al Pacino", "The aging patriarch of a crime dynasty transfers control to his son."},
	{"Parasite", "tt6751668", "Drama", 2019, 8.5, 99, "Song Kang-ho, Choi Woo-shik", "A poor family schemes to become employed by a wealthy household."},
	{"Cinema Paradiso", "tt0095765", "Drama", 1988, 8.5, 90, "Philippe Noiret, Salvatore Cascio", "A filmmaker recalls his childhood in a Sicilian village cinema."},
	{"Central Station", "tt0140888", "Drama", 1998, 8.0, 95, "Fernanda Montenegro, Vinícius de Oliveira", "A retired teacher helps a boy search for his father."},
	{"Tokyo Story", "tt0046438", "Drama", 1953, 8.1, 100, "Chishû Ryû, Chieko Higashiyama", "An old couple visits their busy children in Tokyo."},
	{"A Separation", "tt1832382", "Drama", 2011, 8.3, 99, "Payman Maadi, Leila Hatami", "A married couple faces a difficult decision."},
	{"The Dark Knight", "tt0468569", "Action", 2008, 9.0, 94, "Christian Bale, Heath Ledger", "Batman faces the Joker in Gotham City."},
	{"Mad Max: Fury Road", "tt1392190", "Action", 2015, 8.1, 97, "Tom Hardy, Charlize Theron", "A woman rebels against a tyrant in a desert wasteland."},
	{"Seven Samurai", "tt0047478", "Action", 1954, 8.6, 100, "Toshirô Mifune, Takashi Shimura", "Farmers hire seven samurai to defend their village."},
	{"The Raid", "tt1899353", "Action", 2011, 7.6, 87, "Iko Uwais, Joe Taslim", "A SWAT team is trapped in a building run by a crime lord."},
	{"City of God", "tt0317248", "Action", 2002, 8.6, 91, "Alexandre Rodrigues, Leandro Firmino", "Two boys grow up on different paths in a Rio favela."},
	{"Die Hard", "tt0095016", "Action", 1988, 8.2, 94, "Bruce Willis, Alan Rickman", "A cop fights terrorists in a Los Angeles skyscraper."},
	{"Blade Runner", "tt0083658", "Sci-Fi", 1982, 8.1, 89, "Harrison Ford, Rutger Hauer", "A blade runner hunts replicants in a dystopian Los Angeles."},
	{"Arrival", "tt2543164", "Sci-Fi", 2016, 7.9, 94, "Amy Adams, Jeremy Renner", "A linguist works to communicate with alien visitors."},
	{"Stalker", "tt0079944", "Sci-Fi", 1979, 8.0, 100, "Alisa Freyndlikh, Aleksandr Kaydanovskiy", "A guide leads two men through the mysterious Zone."},
	{"Alien", "tt0078748", "Sci-Fi", 1979, 8.5, 93, "Sigourney Weaver, Tom Skerritt", "A spaceship crew is stalked by a deadly creature."},
	{"Ex Machina", "tt0470752", "Sci-Fi", 2014, 7.7, 92, "Alicia Vikander, Domhnall Gleeson", "A programmer evaluates a humanoid AI."},
	{"The Matrix", "tt0133093", "Sci-Fi", 1999, 8.7, 83, "Keanu Reeves, Laurence Fishburne", "A hacker learns the truth about his reality."},
	{"Amélie", "tt0211915", "Comedy", 2001, 8.3, 89, "Audrey Tautou, Mathieu Kassovitz", "A shy waitress decides to change the lives of those around her."},
	{"The Grand Budapest Hotel", "tt2278388", "Comedy", 2014, 8.1, 92, "Ralph Fiennes, Tony Revolori", "A concierge and his lobby boy are framed for murder."},
	{"Groundhog Day", "tt0107048", "Comedy", 1993, 8.0, 94, "Bill Murray, Andie MacDowell", "A weatherman relives the same day again and again."},
	{"Some Like It Hot", "tt0053291", "Comedy", 1959, 8.2, 94, "Marilyn Monroe, Tony Curtis", "Two musicians disguise themselves to escape the mob."},
	{"The Intouchables", "tt1675434", "Comedy", 2011, 8.5, 75, "François Cluzet, Omar Sy", "A wealthy quadriplegic hires an unlikely caregiver."},
	{"Wild Tales", "tt3011894", "Comedy", 2014, 8.1, 95, "Ricardo Darín, Oscar Martínez", "Six stories of people pushed to their limits."},
	{"Se7en", "tt0114369", "Thriller", 1995, 8.6, 83, "Morgan Freeman, Brad Pitt", "Two detectives hunt a serial killer."},
	{"Oldboy", "tt0364569", "Thriller", 2003, 8.3, 82, "Choi Min-sik, Yoo Ji-tae", "A man is imprisoned for fifteen years without explanation."},
	{"The Secret in Their Eyes", "tt1305806", "Thriller", 2009, 8.2, 91, "Ricardo Darín, Soledad Villamil", "A retired investigator revisits an unsolved case."},
	{"Rear Window", "tt0047396", "Thriller", 1954, 8.5, 98, "James Stewart, Grace Kelly", "A photographer suspects a neighbour of murder."},
	{"Memories of Murder", "tt0353969", "Thriller", 2003, 8.1, 95, "Song Kang-ho, Kim Sang-kyung", "Detectives investigate a string of killings in rural Korea."},
	{"Spirited Away", "tt0245429", "Animation", 2001, 8.6, 96, "Rumi Hiiragi, Miyu Irino", "A girl wanders into a world of spirits."},
	{"WALL·E", "tt0910970", "Animation", 2008, 8.4, 95, "Ben Burtt, Elissa Knight", "A waste-collecting robot falls in love."},
	{"Persepolis", "tt0808417", "Animation", 2007, 8.0, 96, "Chiara Mastroianni, Catherine Deneuve", "A girl comes of age during the Iranian Revolution."},
	{"Grave of the Fireflies", "tt0095327", "Animation", 1988, 8.5, 100, "Tsutomu Tatsumi, Ayano Shiraishi", "Two siblings struggle to survive in wartime Japan."},
	{"Pan's Labyrinth", "tt0457430", "Fantasy", 2006, 8.2, 95, "Ivana Baquero, Sergi López", "A girl escapes into an eerie fantasy world."},
	{"The Princess Bride", "tt0093779", "Fantasy", 1987, 8.0, 97, "Cary Elwes, Robin Wright", "A farmhand rescues his true love."},
	{"Get Out", "tt5052448", "Horror", 2017, 7.8, 98, "Daniel Kaluuya, Allison Williams", "A visit to a girlfriend's family turns sinister."},
	{"The Shining", "tt0081505", "Horror", 1980, 8.4, 83, "Jack Nicholson, Shelley Duvall", "A family caretakes an isolated hotel for the winter."},
	{"Before Sunrise", "tt0112471", "Romance", 1995, 8.1, 100, "Ethan Hawke, Julie Delpy", "Two strangers spend one night walking through Vienna."},
	{"In the Mood for Love", "tt0118694", "Romance", 2000, 8.1, 92, "Tony Leung Chiu-wai, Maggie Cheung", "Two neighbours suspect their spouses of an affair."},
}

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	log := logging.With("seed")
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Info().Msg("truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE ratings, movies, users RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Info().Int("count", seedUserCount).Msg("inserting users")
	if err := seedUsers(ctx, pool, rng, seedUserCount); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Info().Int("count", len(catalogue)).Msg("inserting movies")
	if err := seedMovies(ctx, pool); err != nil {
		return fmt.Errorf("seed movies: %w", err)
	}

	log.Info().Msg("inserting ratings")
	if err := seedRatings(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed ratings: %w", err)
	}

	log.Info().Msg("seeding complete")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	rows := []string{}
	args := []any{}

	for i := range n {
		username := fmt.Sprintf("user%02d", i+1)
		isAdmin := i == 0
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(365))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, username, isAdmin, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO users (username, is_admin, created_at) VALUES " + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedMovies(ctx context.Context, pool *pgxpool.Pool) error {
	rows := []string{}
	args := []any{}

	for _, m := range catalogue {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args, m.title, m.imdbID, m.genre, m.year, m.imdb, m.rt, m.actors, m.synopsis)
	}

	query := "INSERT INTO movies (title, imdb_id, genre, year, imdb_rating, rotten_tomatoes_rating, actors, description) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

// seedRatings gives each rated user a favourite genre. Most of their ratings
// fall in it and score higher than the rest.
func seedRatings(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	byGenre := make(map[string][]int64)
	var genres []string
	for i, m := range catalogue {
		if _, ok := byGenre[m.genre]; !ok {
			genres = append(genres, m.genre)
		}
		byGenre[m.genre] = append(byGenre[m.genre], int64(i+1))
	}

	seen := make(map[[2]int64]bool)
	rows := []string{}
	args := []any{}

	for userID := int64(1); userID <= ratedUserCount; userID++ {
		favourite := genres[rng.Intn(len(genres))]
		count := 3 + rng.Intn(6)

		for range count {
			var movieID int64
			var score float64
			if rng.Float64() < 0.7 {
				candidates := byGenre[favourite]
				movieID = candidates[rng.Intn(len(candidates))]
				score = halfStep(7 + rng.Float64()*3)
			} else {
				movieID = int64(rng.Intn(len(catalogue)) + 1)
				score = halfStep(3 + rng.Float64()*6)
			}

			key := [2]int64{userID, movieID}
			if seen[key] {
				continue
			}
			seen[key] = true

			ratedAt := time.Now().AddDate(0, 0, -rng.Intn(180))

			base := len(args)
			rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
			args = append(args, userID, movieID, score, ratedAt)
		}
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO ratings (user_id, movie_id, rating, created_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

// halfStep rounds v to the nearest 0.5 within the rating range.
func halfStep(v float64) float64 {
	return math.Min(10, math.Max(0, math.Round(v*2)/2))
}
