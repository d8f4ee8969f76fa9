package request

type FilmUploadRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	Year            *int     `json:"year,omitempty" validate:"omitempty,min=1888"`
	Logline         string   `json:"logline,omitempty" validate:"max=280"`
	Type            string   `json:"type" validate:"required,oneof=movie drama short documentary series"`
	Genres          []string `json:"genre,omitempty" validate:"dive,min=1,max=60"`
	DurationSeconds int      `json:"duration_s" validate:"min=0"`
	Currency        string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	RentPrice       float64  `json:"rent_price" validate:"min=0"`
	RentalHours     int      `json:"rental_hours,omitempty" validate:"omitempty,min=1"`
	BuyPrice        float64  `json:"buy_price" validate:"min=0"`

	// Asset slots the client wants presigned upload URLs for.
	WithThumbnail bool `json:"with_thumbnail"`
	WithTrailer   bool `json:"with_trailer"`
	WithFullFilm  bool `json:"with_full_film"`
}

type WatchProgressRequest struct {
	PositionSeconds int  `json:"position_s" validate:"min=0"`
	DurationSeconds int  `json:"duration_s" validate:"min=0"`
	Completed       bool `json:"completed"`
}
