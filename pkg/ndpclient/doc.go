// Package ndpclient is the entry point for creating Nordlys Data Platform
// API clients.
//
// The simplest way to get a client is with a static token:
//
//	client, err := ndpclient.NewWithToken("https://api.nordlys.io", "my-project", token)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	assets, err := client.Assets().Create(ctx, creates)
//
// For service accounts, use the OAuth2 client_credentials grant:
//
//	client, err := ndpclient.NewWithClientCredentials(
//		"https://api.nordlys.io", "my-project", clientID, clientSecret)
//
// Configuration can also come from NDP_* environment variables and an
// optional YAML file:
//
//	client, err := ndpclient.NewFromEnv("")
package ndpclient
