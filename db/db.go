package db

import (
	"strconv"

	"github.com/annotatorB/schubert-dances/constants"
	"github.com/annotatorB/schubert-dances/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// GetScoreMetadatas looks up catalogue metadata (composer, title, Deutsch
// number, year) for up to 10 score filenames at a time.
func GetScoreMetadatas(filenames []string) map[string]model.ScoreMetadata {
	if len(filenames) > 10 {
		panic("Not supposed to pass in more than 10 filenames!")
	}

	res := make(map[string]model.ScoreMetadata)

	if len(filenames) == 0 {
		return res
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}

	endpoint := constants.GetMetadataEndpoint()
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		panic("Could not create a new DynamoDB session because " + err.Error())
	}

	client := dynamodb.New(session)
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			constants.MetadataTable: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		panic("Error from DynamoDB: " + err.Error())
	}

	for _, v := range dbres.Responses[constants.MetadataTable] {
		var s model.ScoreMetadata
		if v["Year"] != nil && v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			s.Year = uint(year)
		}
		if v["Composer"] != nil && v["Composer"].S != nil {
			s.Composer = *v["Composer"].S
		}
		if v["Title"] != nil && v["Title"].S != nil {
			s.Title = *v["Title"].S
		}
		if v["Deutsch"] != nil && v["Deutsch"].S != nil {
			s.Deutsch = *v["Deutsch"].S
		}
		res[*v["PK"].S] = s
	}

	return res
}
