package stats

import (
	"math"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/store"
)

func song(artist, title string, year int, genre string, popularity float64) model.Song {
	return model.Song{
		Artist:       artist,
		Title:        title,
		Year:         year,
		Genre:        genre,
		Popularity:   popularity,
		Danceability: 0.5,
		Energy:       0.5,
		Tempo:        120,
	}
}

func sampleSet() *store.RecordSet {
	songs := []model.Song{
		song("Eminem", "Stan", 2000, "hip hop", 83),
		song("Britney Spears", "Oops", 2000, "pop", 77),
		song("Rihanna", "Umbrella", 2007, "['pop', 'R&B']", 80),
		song("Eminem", "Lose Yourself", 2002, "['hip hop']", 83),
		song("Coldplay", "Clocks", 2002, "rock, pop", 70),
		song("Rihanna", "Diamonds", 2012, "pop, R&B", 60),
	}
	songs[0].Danceability, songs[0].Tempo = 0.78, 80
	songs[3].Danceability, songs[3].Tempo = 0.69, math.NaN()
	return store.NewRecordSet(songs)
}
