package clientcli

// SubmitResult describes a completed upload: what the archive stored and
// the digest computed locally before the file left the machine.
type SubmitResult struct {
	Name         string   `json:"name"`
	LocalPath    string   `json:"local_path"`
	Digest       string   `json:"sha256"`
	Size         int64    `json:"size_bytes"`
	DataShards   int      `json:"data_shards"`
	ParityShards int      `json:"parity_shards"`
	ShardHashes  []string `json:"shard_hashes"`
}

// RetrieveResult describes a completed download.
type RetrieveResult struct {
	Name      string `json:"name"`
	LocalPath string `json:"local_path"`
	Size      int64  `json:"size_bytes"`
}

// StatusReport is the archive's health report for a single file.
type StatusReport struct {
	Name         string   `json:"name"`
	LastModified string   `json:"last_modified"`
	Health       string   `json:"health"`
	ShardHashes  []string `json:"shard_hashes"`
}

// FileListing holds the names of all archived files, in server order.
type FileListing struct {
	Files []string `json:"files"`
}

// RepairReport is the archive's verdict after a repair pass.
type RepairReport struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// submitRsp mirrors the server's submit_data JSON response.
type submitRsp struct {
	Size         int64    `json:"size"`
	Hashes       []string `json:"hashes"`
	DataShards   int      `json:"data_shards"`
	ParityShards int      `json:"parity_shards"`
}

// checkRsp mirrors the server's check_data JSON response.
type checkRsp struct {
	Name   string   `json:"name"`
	Lmod   string   `json:"lmod"`
	Health string   `json:"health"`
	Hashes []string `json:"hashes"`
}

// listRsp mirrors the server's list_data JSON response.
type listRsp struct {
	Files []string `json:"files"`
}

// repairRsp mirrors the server's repair_data JSON response.
type repairRsp struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}
