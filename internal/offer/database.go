package offer

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	offerBucketName   = "offers"
	vehicleBucketName = "vehicle"
	vehicleKey        = "profile"
)

// DefaultVehicle is used until the driver saves a profile.
var DefaultVehicle = Vehicle{MPG: 28, GasPriceUSD: 4.50}

// DB defines the interface for database operations
type DB interface {
	// SaveOffer saves an offer to the database
	SaveOffer(offer *Offer) error

	// GetOffer retrieves an offer by ID
	GetOffer(id string) (*Offer, error)

	// ListOffers returns all offers
	ListOffers() ([]*Offer, error)

	// DeleteOffer removes an offer from the database
	DeleteOffer(id string) error

	// SaveVehicle persists the vehicle profile
	SaveVehicle(vehicle Vehicle) error

	// GetVehicle returns the stored vehicle profile, or DefaultVehicle when
	// none has been saved yet
	GetVehicle() (Vehicle, error)

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	// Create buckets if they don't exist
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(offerBucketName)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(vehicleBucketName)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveOffer saves an offer to the database
func (b *BoltDB) SaveOffer(offer *Offer) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(offerBucketName))
		data, err := json.Marshal(offer)
		if err != nil {
			return fmt.Errorf("marshaling offer: %w", err)
		}
		return bucket.Put([]byte(offer.ID), data)
	})
}

// GetOffer retrieves an offer by ID
func (b *BoltDB) GetOffer(id string) (*Offer, error) {
	var offer *Offer
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(offerBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("offer not found: %s", id)
		}
		return json.Unmarshal(data, &offer)
	})
	if err != nil {
		return nil, err
	}
	return offer, nil
}

// ListOffers returns all offers
func (b *BoltDB) ListOffers() ([]*Offer, error) {
	offers := make([]*Offer, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(offerBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var offer Offer
			if err := json.Unmarshal(v, &offer); err != nil {
				return fmt.Errorf("unmarshaling offer: %w", err)
			}
			offers = append(offers, &offer)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// DeleteOffer removes an offer from the database
func (b *BoltDB) DeleteOffer(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(offerBucketName))
		return bucket.Delete([]byte(id))
	})
}

// SaveVehicle persists the vehicle profile
func (b *BoltDB) SaveVehicle(vehicle Vehicle) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(vehicleBucketName))
		data, err := json.Marshal(vehicle)
		if err != nil {
			return fmt.Errorf("marshaling vehicle: %w", err)
		}
		return bucket.Put([]byte(vehicleKey), data)
	})
}

// GetVehicle returns the stored vehicle profile, or DefaultVehicle when none
// has been saved yet
func (b *BoltDB) GetVehicle() (Vehicle, error) {
	vehicle := DefaultVehicle
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(vehicleBucketName))
		data := bucket.Get([]byte(vehicleKey))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &vehicle)
	})
	if err != nil {
		return Vehicle{}, fmt.Errorf("loading vehicle profile: %w", err)
	}
	return vehicle, nil
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
