package fetch

// response is the envelope of every gacha log API reply. Numbers are encoded
// as strings.
type response struct {
	Retcode int       `json:"retcode"`
	Message string    `json:"message"`
	Data    *pageData `json:"data"`
}

type pageData struct {
	Page   string     `json:"page"`
	Size   string     `json:"size"`
	Total  string     `json:"total"`
	Region string     `json:"region"`
	List   []itemData `json:"list"`
}

type itemData struct {
	UID       string `json:"uid"`
	GachaType string `json:"gacha_type"`
	ItemID    string `json:"item_id"`
	Count     string `json:"count"`
	Time      string `json:"time"`
	Name      string `json:"name"`
	Lang      string `json:"lang"`
	ItemType  string `json:"item_type"`
	RankType  string `json:"rank_type"`
	ID        string `json:"id"`
}
