// Copyright 2022 NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package downloader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// IsRemote reports whether the given location is an HTTP(S) URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Fetch downloads a dataset file from the given URL into dir, and returns
// the path of the local copy.
//
// The local file name is the URL base name prefixed by a hash of the whole
// URL, so that distinct URLs never share a cached file.
//
// If one or more directory levels don't yet exist, they are created
// setting the permissions bits to 0755 (rwxr-xr-x).
//
// By setting the flag overwriteIfExist to false, a file that already
// exists is kept and considered as already successfully downloaded. If
// the flag is otherwise set to true, the file is downloaded again and
// overwritten.
func Fetch(ctx context.Context, rawURL, dir string, overwriteIfExist bool, accessToken string) (string, error) {
	name, err := cacheFileName(rawURL)
	if err != nil {
		return "", err
	}
	d := downloader{
		url:              rawURL,
		dir:              dir,
		filePath:         filepath.Join(dir, name),
		accessToken:      accessToken,
		overwriteIfExist: overwriteIfExist,
	}
	if err := d.download(ctx); err != nil {
		return "", err
	}
	return d.filePath, nil
}

// downloader is a helper struct for downloading a single file.
type downloader struct {
	url              string
	dir              string
	filePath         string
	accessToken      string
	overwriteIfExist bool
}

func cacheFileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("error parsing URL %#v: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("URL %#v does not name a file", rawURL)
	}
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:8]) + "-" + name, nil
}

func (d downloader) download(ctx context.Context) error {
	if err := d.ensureDir(); err != nil {
		return err
	}
	return d.downloadFile(ctx)
}

func (d downloader) ensureDir() error {
	if info, err := os.Stat(d.dir); err == nil && info.IsDir() {
		return nil
	}
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("error creating directory %#v: %w", d.dir, err)
	}
	return nil
}

func (d downloader) downloadFile(ctx context.Context) (err error) {
	if info, err := os.Stat(d.filePath); !d.overwriteIfExist && err == nil && !info.IsDir() {
		log.Debug().Str("file", d.filePath).Msg("dataset file already exists, skipping download")
		return nil
	}

	log.Debug().Str("url", d.url).Str("destination", d.filePath).Msg("downloading")

	resp, err := d.httpGet(ctx)
	if err != nil {
		return fmt.Errorf("error getting %#v: %w", d.url, err)
	}
	defer func() {
		if e := resp.Body.Close(); e != nil && err == nil {
			err = fmt.Errorf("error closing %#v response body: %w", d.url, e)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%#v responded with %s", d.url, resp.Status)
	}

	// The file is written under a temporary name and moved into place only
	// once complete, so an interrupted download never looks cached.
	f, err := os.CreateTemp(d.dir, ".download-*")
	if err != nil {
		return fmt.Errorf("error creating temporary file in %#v: %w", d.dir, err)
	}
	tmpPath := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("error downloading %#v to %#v: %w", d.url, d.filePath, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("error closing file %#v: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, d.filePath); err != nil {
		return fmt.Errorf("error moving %#v to %#v: %w", tmpPath, d.filePath, err)
	}
	log.Debug().Str("file", d.filePath).Int64("bytes", n).Msg("download completed")
	return nil
}

func (d downloader) httpGet(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, err
	}
	if d.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+d.accessToken)
	}
	return http.DefaultClient.Do(req)
}
