// Package ports defines the interfaces between the Mosaic core and its
// adapters: where records come from (RecordFetcher) and where cached record
// sets live (RecordStore).
package ports
