// Package plantid identifica plantas a partir de una imagen usando la API de
// PlantNet, con un fallback de demostración cuando no hay API key o la API
// falla.
package plantid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

type Result struct {
	NombreCientifico string `json:"nombre_cientifico"`
	NombreComun      string `json:"nombre_comun"`
	Familia          string `json:"familia"`
	Score            string `json:"score"`
	Imagen           string `json:"imagen,omitempty"`
	Wikipedia        string `json:"wikipedia"`
}

type Response struct {
	Success bool     `json:"success"`
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Demo    bool     `json:"demo"`
	API     string   `json:"api,omitempty"`
}

type Client struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
	}
}

// plantNetResponse es el subconjunto de la respuesta de PlantNet que usamos.
type plantNetResponse struct {
	Results []struct {
		Score   float64 `json:"score"`
		Species struct {
			ScientificNameWithoutAuthor string   `json:"scientificNameWithoutAuthor"`
			CommonNames                 []string `json:"commonNames"`
			Family                      struct {
				ScientificNameWithoutAuthor string `json:"scientificNameWithoutAuthor"`
			} `json:"family"`
		} `json:"species"`
		Images []struct {
			URL struct {
				M string `json:"m"`
			} `json:"url"`
		} `json:"images"`
	} `json:"results"`
}

// Identify nunca devuelve error al caller: cualquier fallo de la API externa
// degrada al modo demo, igual que el sitio original.
func (c *Client) Identify(ctx context.Context, image []byte) *Response {
	if c.APIKey == "" {
		return DemoResults(image)
	}

	resp, err := c.callPlantNet(ctx, image)
	if err != nil {
		log.Printf("[plantid] PlantNet falló, usando demo: %v", err)
		return DemoResults(image)
	}
	if len(resp.Results) == 0 {
		return DemoResults(image)
	}

	n := len(resp.Results)
	if n > 5 {
		n = 5
	}
	out := make([]Result, 0, n)
	for _, r := range resp.Results[:n] {
		sci := r.Species.ScientificNameWithoutAuthor
		common := "No disponible"
		if len(r.Species.CommonNames) > 0 {
			common = r.Species.CommonNames[0]
		}
		family := r.Species.Family.ScientificNameWithoutAuthor
		if family == "" {
			family = "Desconocida"
		}
		imagen := ""
		if len(r.Images) > 0 {
			imagen = r.Images[0].URL.M
		}
		out = append(out, Result{
			NombreCientifico: sci,
			NombreComun:      common,
			Familia:          family,
			Score:            fmt.Sprintf("%.2f", r.Score*100),
			Imagen:           imagen,
			Wikipedia:        "https://es.wikipedia.org/wiki/" + strings.ReplaceAll(sci, " ", "_"),
		})
	}
	return &Response{Success: true, Results: out, Total: len(out), API: "PlantNet"}
}

func (c *Client) callPlantNet(ctx context.Context, image []byte) (*plantNetResponse, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="images"; filename="plant.jpg"`)
	hdr.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := w.WriteField("organs", "auto"); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v2/identify/all?api-key=%s", c.BaseURL, url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("plantnet status %s", res.Status)
	}

	var pr plantNetResponse
	if err := json.NewDecoder(res.Body).Decode(&pr); err != nil {
		return nil, err
	}
	return &pr, nil
}
