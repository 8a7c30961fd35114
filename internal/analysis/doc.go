// Package analysis is the HTTP client for the Kreyòl Lingua analysis
// service. The service performs the actual normalization and linguistic
// tagging; this client only submits text and decodes the tagged response.
package analysis
