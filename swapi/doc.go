// Package swapi provides a client for the public Star Wars film listing API.
//
// The client fetches the film collection from a single listing endpoint and
// decodes it into Film records. It performs exactly one request per call;
// retry policy belongs to the caller.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := swapi.NewClient(
//		"https://swapi.dev/api/films/",
//		logger,
//		swapi.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	films, err := client.GetFilms(ctx)
//
// # Error Handling
//
// GetFilms distinguishes three failure kinds:
//
//   - Transport failures are returned wrapped with %w
//   - Non-2xx responses are returned as *APIError
//   - Bodies that do not decode into the expected shape wrap ErrInvalidResponse
//
// Use IsStatusError to detect the second kind:
//
//	if swapi.IsStatusError(err) {
//		// upstream answered, but not with success
//	}
package swapi
