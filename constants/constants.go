package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetScoresDir() string {
	path := os.Getenv("SCORES_PATH")
	if path != "" {
		return path
	}
	return "./scores"
}

func GetMetadataEndpoint() string {
	endpoint := os.Getenv("METADATA_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

const MetadataTable = "schubert-dances-metadata"
