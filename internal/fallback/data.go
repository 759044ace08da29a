package fallback

import "github.com/iliyamo/cinema-booking-client/internal/model"

// SampleMovies returns the demo catalog shown when the movie API is
// unreachable.
func SampleMovies() []model.Movie {
	return []model.Movie{
		{
			ID:          "1",
			TitleKG:     "Жеңиш",
			TitleRU:     "Победа",
			SynopsisKG:  "Кыргызстандын эгемендүүлүк күрөшүнө арналган патриоттук окуя.",
			SynopsisRU:  "Патриотическая история, посвященная борьбе страны за независимость.",
			Genre:       "Drama",
			Language:    "kg",
			Duration:    105,
			Poster:      "/images/posters/jenish.jpg",
			ReleaseDate: "2023-08-31",
			IsShowing:   true,
		},
		{
			ID:          "2",
			TitleKG:     "Боз Салкын",
			TitleRU:     "Боз Салкын",
			SynopsisKG:  "Салттык баалуулуктарды кайрадан ачкан жаш аялдын окуясы.",
			SynopsisRU:  "История молодой женщины, заново открывающей традиционные ценности.",
			Genre:       "Art-house",
			Language:    "kg",
			Duration:    120,
			Poster:      "/images/posters/boz-salkyn.jpg",
			ReleaseDate: "2022-05-15",
			IsShowing:   true,
		},
		{
			ID:          "3",
			TitleKG:     "Шамбала",
			TitleRU:     "Шамбала",
			SynopsisKG:  "Табышмактуу Шамбала дүйнөсүн издеген жаш баланын окуясы.",
			SynopsisRU:  "История мальчика, ищущего таинственный мир Шамбалы.",
			Genre:       "Mystery",
			Language:    "ru",
			Duration:    90,
			Poster:      "/images/posters/shambala.jpg",
			ReleaseDate: "2023-02-10",
			IsShowing:   true,
		},
		{
			ID:          "4",
			TitleKG:     "Курманжан Датка",
			TitleRU:     "Курманжан Датка: Королева гор",
			SynopsisKG:  "Легендарлуу Алай ханышасы Курманжан Датканын өмүр баяны.",
			SynopsisRU:  "Биография Курманджан Датки, легендарной правительницы Алая.",
			Genre:       "Historical",
			Language:    "kg",
			Duration:    125,
			Poster:      "/images/posters/kurmanjan.jpg",
			ReleaseDate: "2020-08-31",
			IsShowing:   false,
		},
	}
}

// SnackCategories returns the fixed menu categories.
func SnackCategories() []model.SnackCategory {
	return []model.SnackCategory{
		{ID: 1, Name: "Popcorn"},
		{ID: 2, Name: "Drinks"},
		{ID: 3, Name: "Snacks"},
		{ID: 4, Name: "Combos"},
	}
}

// SnackMenu returns the concession menu used when the snack API is
// unreachable.  Prices are in soms.
func SnackMenu() []model.Snack {
	return []model.Snack{
		{ID: 1, Name: "Small Popcorn", Description: "Classic buttered popcorn", Price: 150, Image: "/images/snacks/small-popcorn.jpg", CategoryID: 1, Available: true},
		{ID: 2, Name: "Medium Popcorn", Description: "Classic buttered popcorn", Price: 200, Image: "/images/snacks/medium-popcorn.jpg", CategoryID: 1, Available: true},
		{ID: 3, Name: "Large Popcorn", Description: "Classic buttered popcorn", Price: 250, Image: "/images/snacks/large-popcorn.jpg", CategoryID: 1, Available: true},
		{ID: 4, Name: "Caramel Popcorn", Description: "Sweet caramel flavor", Price: 280, Image: "/images/snacks/caramel-popcorn.jpg", CategoryID: 1, Available: true},
		{ID: 5, Name: "Coca-Cola Small", Description: "Refreshing soda", Price: 120, Image: "/images/snacks/coke-small.jpg", CategoryID: 2, Available: true},
		{ID: 6, Name: "Coca-Cola Medium", Description: "Refreshing soda", Price: 180, Image: "/images/snacks/coke-medium.jpg", CategoryID: 2, Available: true},
		{ID: 7, Name: "Mineral Water", Description: "500ml bottled water", Price: 80, Image: "/images/snacks/water.jpg", CategoryID: 2, Available: true},
		{ID: 8, Name: "Nachos", Description: "With cheese sauce", Price: 220, Image: "/images/snacks/nachos.jpg", CategoryID: 3, Available: true},
		{ID: 9, Name: "Chocolate Bar", Description: "Sweet treat", Price: 100, Image: "/images/snacks/chocolate.jpg", CategoryID: 3, Available: true},
		{ID: 10, Name: "Combo #1", Description: "Large popcorn + 2 drinks", Price: 400, Image: "/images/snacks/combo1.jpg", CategoryID: 4, Available: true},
		{ID: 11, Name: "Combo #2", Description: "Medium popcorn + drink + snack", Price: 450, Image: "/images/snacks/combo2.jpg", CategoryID: 4, Available: true},
	}
}

// SampleNews returns placeholder news entries for the stub API.
func SampleNews() []model.NewsItem {
	return []model.NewsItem{
		{
			ID:        "n1",
			TitleKG:   "Жаңы зал ачылды",
			TitleRU:   "Открылся новый зал",
			ContentKG: "Биздин кинотеатрда жаңы IMAX залы ачылды.",
			ContentRU: "В нашем кинотеатре открылся новый зал IMAX.",
			Image:     "/images/news/imax.jpg",
			Published: true,
			CreatedAt: "2024-03-01",
		},
		{
			ID:        "n2",
			TitleKG:   "Жайкы акция",
			TitleRU:   "Летняя акция",
			ContentKG: "Жай мезгилинде билеттерге арзандатуу.",
			ContentRU: "Скидки на билеты в летний сезон.",
			Image:     "/images/news/summer.jpg",
			Published: true,
			CreatedAt: "2024-06-10",
		},
	}
}

// SampleGallery returns placeholder gallery photos for the stub API.
func SampleGallery() []model.GalleryItem {
	return []model.GalleryItem{
		{ID: "g1", TitleKG: "Башкы зал", TitleRU: "Главный зал", Image: "/images/gallery/hall.jpg", Category: "halls", CreatedAt: "2024-01-15"},
		{ID: "g2", TitleKG: "Фойе", TitleRU: "Фойе", Image: "/images/gallery/lobby.jpg", Category: "interior", CreatedAt: "2024-02-20"},
	}
}

// MovieByID finds a sample movie, or returns a minimal placeholder so
// fallback generation never comes up empty even for an unknown id.
func MovieByID(id string) model.Movie {
	for _, m := range SampleMovies() {
		if m.ID == id {
			return m
		}
	}
	return model.Movie{
		ID:        id,
		TitleKG:   "Белгисиз тасма",
		TitleRU:   "Неизвестный фильм",
		Genre:     "Drama",
		Language:  "kg",
		Duration:  100,
		IsShowing: true,
	}
}
