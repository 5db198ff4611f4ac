package lambdaapi

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

var jsonHeaders = map[string]string{
	"Content-Type": "application/json",
}

// Success marshals data into a 200 JSON response.
func Success(data interface{}) events.APIGatewayProxyResponse {
	body, err := json.Marshal(data)
	if err != nil {
		return errorResponse(http.StatusInternalServerError, "failed to marshal response")
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
		Headers:    jsonHeaders,
	}
}

func errorResponse(code int, message string) events.APIGatewayProxyResponse {
	body, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		body = []byte(`{"error":"failed to marshal error response"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: code,
		Body:       string(body),
		Headers:    jsonHeaders,
	}
}

func NotFound(message string) events.APIGatewayProxyResponse {
	return errorResponse(http.StatusNotFound, message)
}

func MethodNotAllowed() events.APIGatewayProxyResponse {
	return errorResponse(http.StatusMethodNotAllowed, "method not allowed")
}

func InternalServerError(message string) events.APIGatewayProxyResponse {
	return errorResponse(http.StatusInternalServerError, message)
}
