package config

type MongoConfig interface {
	// GetMongoURL returns a full connection string. When set, the discrete
	// host/port/db/ssl values must not be passed to the store alongside it.
	GetMongoURL() string
	GetMongoHost() string
	GetMongoPort() int
	GetMongoDatabase() string
	GetMongoUser() string
	GetMongoPassword() string
	GetMongoSSL() bool
	GetMongoCollection() string
}

type MongoVars struct{}

var _ MongoConfig = MongoVars{}

func (MongoVars) GetMongoURL() string {
	return GetEnv("MONGO_URL", "")
}

func (MongoVars) GetMongoHost() string {
	return GetEnv("MONGO_HOST", "")
}

func (MongoVars) GetMongoPort() int {
	return GetEnvAsInt("MONGO_PORT", 0)
}

func (MongoVars) GetMongoDatabase() string {
	return GetEnv("MONGO_DB", "")
}

func (MongoVars) GetMongoUser() string {
	return GetEnv("MONGO_USER", "")
}

func (MongoVars) GetMongoPassword() string {
	return GetEnv("MONGO_PASSWORD", "")
}

func (MongoVars) GetMongoSSL() bool {
	return GetEnvAsBool("MONGO_SSL", false)
}

func (MongoVars) GetMongoCollection() string {
	return GetEnv("MONGO_COLLECTION", "")
}
