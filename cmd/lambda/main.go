package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/mcmaster-devtools/gradpath/pkg"
)

// buildMux wires the identical routes cmd/api serves, so the Lambda
// deployment and the standalone server never drift apart.
func buildMux(validator *pkg.Validator, seminar pkg.SeminarPolicy, source pkg.CatalogSource) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/validate", pkg.ValidateHandler(validator, seminar))
	mux.HandleFunc("/api/courses", pkg.CoursesHandler(source))
	mux.HandleFunc("/api/courses/", pkg.CourseHandler(source))
	return mux
}

func main() {
	cfg := pkg.LoadConfig()

	source, err := cfg.OpenCatalogSource()
	if err != nil {
		log.Fatalf("failed to open catalog source: %v", err)
	}

	courses, err := source.LoadCourses()
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	graph, err := pkg.Build(courses)
	if err != nil {
		log.Fatalf("failed to build requirement graph: %v", err)
	}

	validator := pkg.NewValidator(graph)
	seminar := pkg.DefaultSeminarPolicy()

	mux := buildMux(validator, seminar, source)
	adapter := httpadapter.New(mux)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
