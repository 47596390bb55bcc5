package ndp

// Asset represents a node in an asset hierarchy.
type Asset struct {
	ID               int64     `json:"id"                         yaml:"id"`
	ExternalID       string    `json:"externalId,omitempty"       yaml:"externalId,omitempty"`
	Name             string    `json:"name"                       yaml:"name"`
	Description      string    `json:"description,omitempty"      yaml:"description,omitempty"`
	ParentID         int64     `json:"parentId,omitempty"         yaml:"parentId,omitempty"`
	ParentExternalID string    `json:"parentExternalId,omitempty" yaml:"parentExternalId,omitempty"`
	DataSetID        int64     `json:"dataSetId,omitempty"        yaml:"dataSetId,omitempty"`
	Source           string    `json:"source,omitempty"           yaml:"source,omitempty"`
	Labels           []string  `json:"labels,omitempty"           yaml:"labels,omitempty"`
	Metadata         Metadata  `json:"metadata,omitempty"         yaml:"metadata,omitempty"`
	RootID           int64     `json:"rootId,omitempty"           yaml:"rootId,omitempty"`
	CreatedTime      Timestamp `json:"createdTime,omitempty"      yaml:"createdTime,omitempty"`
	LastUpdatedTime  Timestamp `json:"lastUpdatedTime,omitempty"  yaml:"lastUpdatedTime,omitempty"`
}

// AssetCreate is the request body for creating one asset.
type AssetCreate struct {
	ExternalID       string   `json:"externalId,omitempty"       yaml:"externalId,omitempty"`
	Name             string   `json:"name"                       yaml:"name"`
	Description      string   `json:"description,omitempty"      yaml:"description,omitempty"`
	ParentID         int64    `json:"parentId,omitempty"         yaml:"parentId,omitempty"`
	ParentExternalID string   `json:"parentExternalId,omitempty" yaml:"parentExternalId,omitempty"`
	DataSetID        int64    `json:"dataSetId,omitempty"        yaml:"dataSetId,omitempty"`
	Source           string   `json:"source,omitempty"           yaml:"source,omitempty"`
	Labels           []string `json:"labels,omitempty"           yaml:"labels,omitempty"`
	Metadata         Metadata `json:"metadata,omitempty"         yaml:"metadata,omitempty"`
}

// AssetFilter selects assets by exact-match properties in a filtered
// listing.
type AssetFilter struct {
	Name              string   `json:"name,omitempty"              yaml:"name,omitempty"`
	ParentIDs         []int64  `json:"parentIds,omitempty"         yaml:"parentIds,omitempty"`
	ParentExternalIDs []string `json:"parentExternalIds,omitempty" yaml:"parentExternalIds,omitempty"`
	RootIDs           []int64  `json:"rootIds,omitempty"           yaml:"rootIds,omitempty"`
	DataSetIDs        []int64  `json:"dataSetIds,omitempty"        yaml:"dataSetIds,omitempty"`
	Source            string   `json:"source,omitempty"            yaml:"source,omitempty"`
	Labels            []string `json:"labels,omitempty"            yaml:"labels,omitempty"`
	Metadata          Metadata `json:"metadata,omitempty"          yaml:"metadata,omitempty"`
}

// AssetUpdate patches one asset, addressed by ID or external ID.
type AssetUpdate struct {
	ID          int64     `json:"id,omitempty"`
	ExternalID  string    `json:"externalId,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	ParentID    *int64    `json:"parentId,omitempty"`
	DataSetID   *int64    `json:"dataSetId,omitempty"`
	Labels      *[]string `json:"labels,omitempty"`
	Metadata    *Metadata `json:"metadata,omitempty"`
}

// Event represents something that happened at a point or interval in time,
// optionally tied to a set of assets.
type Event struct {
	ID              int64     `json:"id"                        yaml:"id"`
	ExternalID      string    `json:"externalId,omitempty"      yaml:"externalId,omitempty"`
	StartTime       Timestamp `json:"startTime,omitempty"       yaml:"startTime,omitempty"`
	EndTime         Timestamp `json:"endTime,omitempty"         yaml:"endTime,omitempty"`
	Type            string    `json:"type,omitempty"            yaml:"type,omitempty"`
	Subtype         string    `json:"subtype,omitempty"         yaml:"subtype,omitempty"`
	Description     string    `json:"description,omitempty"     yaml:"description,omitempty"`
	AssetIDs        []int64   `json:"assetIds,omitempty"        yaml:"assetIds,omitempty"`
	DataSetID       int64     `json:"dataSetId,omitempty"       yaml:"dataSetId,omitempty"`
	Source          string    `json:"source,omitempty"          yaml:"source,omitempty"`
	Metadata        Metadata  `json:"metadata,omitempty"        yaml:"metadata,omitempty"`
	CreatedTime     Timestamp `json:"createdTime,omitempty"     yaml:"createdTime,omitempty"`
	LastUpdatedTime Timestamp `json:"lastUpdatedTime,omitempty" yaml:"lastUpdatedTime,omitempty"`
}

// EventCreate is the request body for creating one event.
type EventCreate struct {
	ExternalID  string    `json:"externalId,omitempty"  yaml:"externalId,omitempty"`
	StartTime   Timestamp `json:"startTime,omitempty"   yaml:"startTime,omitempty"`
	EndTime     Timestamp `json:"endTime,omitempty"     yaml:"endTime,omitempty"`
	Type        string    `json:"type,omitempty"        yaml:"type,omitempty"`
	Subtype     string    `json:"subtype,omitempty"     yaml:"subtype,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	AssetIDs    []int64   `json:"assetIds,omitempty"    yaml:"assetIds,omitempty"`
	DataSetID   int64     `json:"dataSetId,omitempty"   yaml:"dataSetId,omitempty"`
	Source      string    `json:"source,omitempty"      yaml:"source,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"    yaml:"metadata,omitempty"`
}

// EventUpdate patches one event.
type EventUpdate struct {
	ID          int64      `json:"id,omitempty"`
	ExternalID  string     `json:"externalId,omitempty"`
	StartTime   *Timestamp `json:"startTime,omitempty"`
	EndTime     *Timestamp `json:"endTime,omitempty"`
	Description *string    `json:"description,omitempty"`
	AssetIDs    *[]int64   `json:"assetIds,omitempty"`
	Metadata    *Metadata  `json:"metadata,omitempty"`
}

// TimeSeries represents a stored sequence of datapoints.
type TimeSeries struct {
	ID              int64     `json:"id"                        yaml:"id"`
	ExternalID      string    `json:"externalId,omitempty"      yaml:"externalId,omitempty"`
	Name            string    `json:"name,omitempty"            yaml:"name,omitempty"`
	Description     string    `json:"description,omitempty"     yaml:"description,omitempty"`
	IsString        bool      `json:"isString,omitempty"        yaml:"isString,omitempty"`
	IsStep          bool      `json:"isStep,omitempty"          yaml:"isStep,omitempty"`
	Unit            string    `json:"unit,omitempty"            yaml:"unit,omitempty"`
	AssetID         int64     `json:"assetId,omitempty"         yaml:"assetId,omitempty"`
	DataSetID       int64     `json:"dataSetId,omitempty"       yaml:"dataSetId,omitempty"`
	Metadata        Metadata  `json:"metadata,omitempty"        yaml:"metadata,omitempty"`
	CreatedTime     Timestamp `json:"createdTime,omitempty"     yaml:"createdTime,omitempty"`
	LastUpdatedTime Timestamp `json:"lastUpdatedTime,omitempty" yaml:"lastUpdatedTime,omitempty"`
}

// TimeSeriesCreate is the request body for creating one time series.
type TimeSeriesCreate struct {
	ExternalID  string   `json:"externalId,omitempty"  yaml:"externalId,omitempty"`
	Name        string   `json:"name,omitempty"        yaml:"name,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	IsString    bool     `json:"isString,omitempty"    yaml:"isString,omitempty"`
	IsStep      bool     `json:"isStep,omitempty"      yaml:"isStep,omitempty"`
	Unit        string   `json:"unit,omitempty"        yaml:"unit,omitempty"`
	AssetID     int64    `json:"assetId,omitempty"     yaml:"assetId,omitempty"`
	DataSetID   int64    `json:"dataSetId,omitempty"   yaml:"dataSetId,omitempty"`
	Metadata    Metadata `json:"metadata,omitempty"    yaml:"metadata,omitempty"`
}

// TimeSeriesUpdate patches one time series.
type TimeSeriesUpdate struct {
	ID          int64     `json:"id,omitempty"`
	ExternalID  string    `json:"externalId,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Unit        *string   `json:"unit,omitempty"`
	AssetID     *int64    `json:"assetId,omitempty"`
	Metadata    *Metadata `json:"metadata,omitempty"`
}

// Datapoint is one timestamped value. Value is a float64 for numeric series
// and a string for string series.
type Datapoint struct {
	Timestamp Timestamp   `json:"timestamp"`
	Value     interface{} `json:"value"`
}

// DatapointBatch carries datapoints for one series in an insert request.
type DatapointBatch struct {
	ID         int64       `json:"id,omitempty"`
	ExternalID string      `json:"externalId,omitempty"`
	Datapoints []Datapoint `json:"datapoints"`
}

// DatapointsQuery requests datapoints for one series within a range.
type DatapointsQuery struct {
	ID         int64     `json:"id,omitempty"`
	ExternalID string    `json:"externalId,omitempty"`
	Start      Timestamp `json:"start,omitempty"`
	End        Timestamp `json:"end,omitempty"`
	Limit      int       `json:"limit,omitempty"`
	Cursor     string    `json:"cursor,omitempty"`
}

// DatapointsResult is the retrieved datapoints for one series.
type DatapointsResult struct {
	ID         int64       `json:"id"`
	ExternalID string      `json:"externalId,omitempty"`
	IsString   bool        `json:"isString,omitempty"`
	Unit       string      `json:"unit,omitempty"`
	Datapoints []Datapoint `json:"datapoints"`
	NextCursor string      `json:"nextCursor,omitempty"`
}

// DatapointsDeleteRange deletes datapoints of one series inside a range.
type DatapointsDeleteRange struct {
	ID             int64     `json:"id,omitempty"`
	ExternalID     string    `json:"externalId,omitempty"`
	InclusiveBegin Timestamp `json:"inclusiveBegin"`
	ExclusiveEnd   Timestamp `json:"exclusiveEnd"`
}

// DataSet groups resources under shared governance.
type DataSet struct {
	ID              int64     `json:"id"                        yaml:"id"`
	ExternalID      string    `json:"externalId,omitempty"      yaml:"externalId,omitempty"`
	Name            string    `json:"name"                      yaml:"name"`
	Description     string    `json:"description,omitempty"     yaml:"description,omitempty"`
	WriteProtected  bool      `json:"writeProtected,omitempty"  yaml:"writeProtected,omitempty"`
	Metadata        Metadata  `json:"metadata,omitempty"        yaml:"metadata,omitempty"`
	CreatedTime     Timestamp `json:"createdTime,omitempty"     yaml:"createdTime,omitempty"`
	LastUpdatedTime Timestamp `json:"lastUpdatedTime,omitempty" yaml:"lastUpdatedTime,omitempty"`
}

// DataSetCreate is the request body for creating one data set.
type DataSetCreate struct {
	ExternalID     string   `json:"externalId,omitempty"     yaml:"externalId,omitempty"`
	Name           string   `json:"name"                     yaml:"name"`
	Description    string   `json:"description,omitempty"    yaml:"description,omitempty"`
	WriteProtected bool     `json:"writeProtected,omitempty" yaml:"writeProtected,omitempty"`
	Metadata       Metadata `json:"metadata,omitempty"       yaml:"metadata,omitempty"`
}

// DataSetUpdate patches one data set.
type DataSetUpdate struct {
	ID          int64     `json:"id,omitempty"`
	ExternalID  string    `json:"externalId,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Metadata    *Metadata `json:"metadata,omitempty"`
}

// Transformation is a stored SQL transformation between staging and typed
// resources.
type Transformation struct {
	ID              int64     `json:"id"                        yaml:"id"`
	ExternalID      string    `json:"externalId,omitempty"      yaml:"externalId,omitempty"`
	Name            string    `json:"name"                      yaml:"name"`
	Query           string    `json:"query"                     yaml:"query"`
	Destination     string    `json:"destination,omitempty"     yaml:"destination,omitempty"`
	ConflictMode    string    `json:"conflictMode,omitempty"    yaml:"conflictMode,omitempty"`
	IsPublic        bool      `json:"isPublic,omitempty"        yaml:"isPublic,omitempty"`
	DataSetID       int64     `json:"dataSetId,omitempty"       yaml:"dataSetId,omitempty"`
	CreatedTime     Timestamp `json:"createdTime,omitempty"     yaml:"createdTime,omitempty"`
	LastUpdatedTime Timestamp `json:"lastUpdatedTime,omitempty" yaml:"lastUpdatedTime,omitempty"`
}

// TransformationCreate is the request body for creating one transformation.
type TransformationCreate struct {
	ExternalID   string `json:"externalId,omitempty"   yaml:"externalId,omitempty"`
	Name         string `json:"name"                   yaml:"name"`
	Query        string `json:"query"                  yaml:"query"`
	Destination  string `json:"destination,omitempty"  yaml:"destination,omitempty"`
	ConflictMode string `json:"conflictMode,omitempty" yaml:"conflictMode,omitempty"`
	IsPublic     bool   `json:"isPublic,omitempty"     yaml:"isPublic,omitempty"`
	DataSetID    int64  `json:"dataSetId,omitempty"    yaml:"dataSetId,omitempty"`
}

// TransformationUpdate patches one transformation.
type TransformationUpdate struct {
	ID           int64   `json:"id,omitempty"`
	ExternalID   string  `json:"externalId,omitempty"`
	Name         *string `json:"name,omitempty"`
	Query        *string `json:"query,omitempty"`
	Destination  *string `json:"destination,omitempty"`
	ConflictMode *string `json:"conflictMode,omitempty"`
}

// TransformationJob is one run of a transformation.
type TransformationJob struct {
	ID               int64     `json:"id"`
	TransformationID int64     `json:"transformationId"`
	Status           string    `json:"status"`
	Error            string    `json:"error,omitempty"`
	CreatedTime      Timestamp `json:"createdTime,omitempty"`
	StartedTime      Timestamp `json:"startedTime,omitempty"`
	FinishedTime     Timestamp `json:"finishedTime,omitempty"`
}

// Workflow is a stored directed graph of tasks.
type Workflow struct {
	ExternalID      string         `json:"externalId"                yaml:"externalId"`
	Description     string         `json:"description,omitempty"     yaml:"description,omitempty"`
	Tasks           []WorkflowTask `json:"tasks,omitempty"           yaml:"tasks,omitempty"`
	DataSetID       int64          `json:"dataSetId,omitempty"       yaml:"dataSetId,omitempty"`
	CreatedTime     Timestamp      `json:"createdTime,omitempty"     yaml:"createdTime,omitempty"`
	LastUpdatedTime Timestamp      `json:"lastUpdatedTime,omitempty" yaml:"lastUpdatedTime,omitempty"`
}

// WorkflowTask is one node in a workflow definition.
type WorkflowTask struct {
	ExternalID string   `json:"externalId"          yaml:"externalId"`
	Type       string   `json:"type"                yaml:"type"`
	Parameters RawJSON  `json:"parameters,omitempty" yaml:"-"`
	DependsOn  []string `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
}

// WorkflowExecution is one run of a workflow.
type WorkflowExecution struct {
	ID                 string    `json:"id"`
	WorkflowExternalID string    `json:"workflowExternalId"`
	Status             string    `json:"status"`
	Reason             string    `json:"reason,omitempty"`
	CreatedTime        Timestamp `json:"createdTime,omitempty"`
	StartedTime        Timestamp `json:"startedTime,omitempty"`
	EndedTime          Timestamp `json:"endedTime,omitempty"`
}
