package notification

type ListQuery struct {
	Limit      int  `form:"limit"`
	Offset     int  `form:"offset"`
	UnreadOnly bool `form:"unread"`
}

type ListResponse struct {
	Items       []Recipient `json:"items"`
	Total       int64       `json:"total"`
	UnreadCount int64       `json:"unread_count"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
