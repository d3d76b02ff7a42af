// Package extract reads source collections for the migration pipeline.
//
// Documents are streamed with a bounded cursor batch size so large
// collections keep memory flat, and the store's internal _id is stripped
// before handing documents to the transformation stage.
package extract
