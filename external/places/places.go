package places

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"
)

const (
	logPrefix      = "places"
	defaultTimeout = 5 * time.Second

	searchRadiusMeters = 5000
)

// Doctor is one nearby medical provider.
type Doctor struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  float32 `json:"rating,omitempty"`
	PlaceID string  `json:"place_id"`
}

// Places - interface to look up nearby medical providers
type Places interface {
	FindNearbyDoctors(keyword string, lat, lng float64) ([]Doctor, error)
}

type placesClient struct {
	client *maps.Client
}

// FindNearbyDoctors searches for doctors, clinics and hospitals around
// a coordinate, biased by a medical-context keyword.
func (p placesClient) FindNearbyDoctors(keyword string, lat, lng float64) ([]Doctor, error) {
	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"keyword": keyword,
		"lat":     lat,
		"lng":     lng,
	}).Info("query nearby doctors")

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	resp, err := p.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lng},
		Radius:   searchRadiusMeters,
		Type:     maps.PlaceTypeDoctor,
		Keyword:  keyword,
	})
	if err != nil {
		return nil, err
	}

	doctors := make([]Doctor, 0, len(resp.Results))
	for _, r := range resp.Results {
		doctors = append(doctors, Doctor{
			Name:    r.Name,
			Address: r.Vicinity,
			Rating:  r.Rating,
			PlaceID: r.PlaceID,
		})
	}

	return doctors, nil
}

// New - new Places interface
func New(apiKey string) (Places, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("new map client")

		return nil, err
	}

	return &placesClient{
		client: client,
	}, nil
}
