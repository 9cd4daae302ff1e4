package idgen

import "log"

// Init registers the nodes this service uses. PIX protocol numbers get
// their own node so row IDs and protocol numbers stay separate series.
func Init(nodeID int64) {
	if err := InitNode("default", nodeID); err != nil {
		log.Fatalf("[IDGen] InitNode default failed: %v", err)
	}
	if err := InitNode("pix_protocol", nodeID); err != nil {
		log.Fatalf("[IDGen] InitNode pix_protocol failed: %v", err)
	}
	log.Printf("[IDGen] snowflake nodes initialized: nodeID=%d", nodeID)
}
