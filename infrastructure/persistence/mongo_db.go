package persistence

import (
	"fmt"
	"net/url"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NewMongoDb connects to the shared document store holding integration records.
func NewMongoDb(host, port, user, password, name string) (*mongo.Client, error) {
	if host == "" {
		return nil, fmt.Errorf("mongo host not configured")
	}
	if port == "" {
		port = "27017"
	}

	var uri string
	if user != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin",
			url.QueryEscape(user), url.QueryEscape(password), host, port, name)
	} else {
		uri = fmt.Sprintf("mongodb://%s:%s/%s", host, port, name)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return client, nil
}
