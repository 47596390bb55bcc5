// Package ndp defines the public surface of the Nordlys Data Platform
// client: resource types, client interfaces, configuration, errors, and
// the chunked concurrent executor every multi-item operation runs through.
//
// # Creating a client
//
// Use the ndpclient package to construct a working client:
//
//	client, err := ndpclient.New(&ndp.Config{
//		BaseURL:      "https://api.nordlys.io",
//		Project:      "plant-north",
//		ClientID:     os.Getenv("NDP_CLIENT_ID"),
//		ClientSecret: os.Getenv("NDP_CLIENT_SECRET"),
//	})
//
// # Chunked execution and partial failures
//
// Multi-item operations (create 100k assets, retrieve a million
// datapoints) are split into bounded-size requests and executed
// concurrently under a worker budget. Transient failures (429, 502, 503,
// connection resets) are retried with capped exponential backoff and
// jitter. A call either succeeds for every item or returns a single
// *PartialError carrying three item sets:
//
//	created, err := client.Assets().Create(ctx, assets)
//	if partial, ok := ndp.AsPartialError[ndp.AssetCreate](err); ok {
//		log.Printf("ok=%d failed=%d unknown=%d",
//			len(partial.Successful), len(partial.Failed), len(partial.Unknown))
//	}
//
// Unknown means the request was sent but the response was lost; those
// items may exist server-side and must be re-queried, never assumed
// failed.
//
// # Hierarchies
//
// Assets.CreateHierarchy splits an asset forest into levels so that no
// child is requested before its parent is confirmed created. Descendants
// of a failed parent are reported failed without an attempt; descendants
// of an unknown parent are reported unknown.
//
// # Pagination
//
// List operations return one cursor page; ListAll returns an iterator
// that walks every page lazily:
//
//	it := client.Assets().ListAll(ctx, ndp.NewQueryParams().WithLimit(1000))
//	for it.HasNext() {
//		asset, err := it.Next()
//		...
//	}
package ndp
