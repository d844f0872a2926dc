/*
Copyright © 2019 the ForestGrid authors.
This file is part of ForestGrid.

ForestGrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ForestGrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ForestGrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package gridutil

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/google/go-cloud/blob"
	"github.com/google/go-cloud/blob/fileblob"
	"github.com/google/go-cloud/blob/gcsblob"
	"github.com/google/go-cloud/blob/s3blob"
	"github.com/google/go-cloud/gcp"
	"github.com/spatialmodel/forestgrid/gridmap"
)

// bucketOpeners opens a bucket by name for each supported URL scheme.
var bucketOpeners = map[string]func(ctx context.Context, u *url.URL) (*blob.Bucket, error){
	// A file bucket is a directory relative to the working directory.
	"file": func(_ context.Context, u *url.URL) (*blob.Bucket, error) {
		return fileblob.NewBucket(u.Host)
	},
	"gs": googleBucket,
	"s3": awsBucket,
}

// IsBlob reports whether path is a bucket URL, such as
// gs://stands/plot1.toml, rather than a path on the local disk.
func IsBlob(path string) bool {
	i := strings.Index(path, "://")
	if i <= 0 {
		return false
	}
	_, ok := bucketOpeners[path[:i]]
	return ok
}

// OpenBucket opens the bucket named by a URL of the form scheme://bucket.
// Schemes are file (a local directory), gs (Google Cloud Storage) and
// s3. An s3 URL may carry the bucket's region as ?region=...; otherwise
// AWS_REGION is used. Credentials come from the environment.
func OpenBucket(ctx context.Context, bucketURL string) (*blob.Bucket, error) {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, fmt.Errorf("gridutil: bucket %s: %v", bucketURL, err)
	}
	open, ok := bucketOpeners[u.Scheme]
	if !ok {
		return nil, fmt.Errorf("gridutil: bucket %s: unsupported storage scheme %q", bucketURL, u.Scheme)
	}
	b, err := open(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("gridutil: bucket %s: %v", bucketURL, err)
	}
	return b, nil
}

func googleBucket(ctx context.Context, u *url.URL) (*blob.Bucket, error) {
	creds, err := gcp.DefaultCredentials(ctx)
	if err != nil {
		return nil, err
	}
	client, err := gcp.NewHTTPClient(gcp.DefaultTransport(), gcp.CredentialsTokenSource(creds))
	if err != nil {
		return nil, err
	}
	return gcsblob.OpenBucket(ctx, u.Host, client)
}

func awsBucket(ctx context.Context, u *url.URL) (*blob.Bucket, error) {
	region := u.Query().Get("region")
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		return nil, fmt.Errorf("no region for s3 bucket %q", u.Host)
	}
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewEnvCredentials(),
	})
	if err != nil {
		return nil, err
	}
	return s3blob.OpenBucket(ctx, sess, u.Host)
}

// openObject opens the bucket holding the object named by a bucket URL
// and returns it together with the object's key.
func openObject(ctx context.Context, path string) (*blob.Bucket, string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return nil, "", err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return nil, "", fmt.Errorf("%s names a bucket but no object", path)
	}
	root := url.URL{Scheme: u.Scheme, Host: u.Host, RawQuery: u.RawQuery}
	b, err := OpenBucket(ctx, root.String())
	if err != nil {
		return nil, "", err
	}
	return b, key, nil
}

// OpenMap reads the map file at path, which is either a local file
// or a blob path as accepted by IsBlob.
func OpenMap(ctx context.Context, path string) ([]*gridmap.Description, error) {
	var r io.ReadCloser
	if IsBlob(path) {
		bucket, key, err := openObject(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("gridutil: opening map %s: %v", path, err)
		}
		br, err := bucket.NewReader(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("gridutil: opening map %s: %v", path, err)
		}
		r = br
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("gridutil: opening map: %v", err)
		}
		r = f
	}
	defer r.Close()
	descs, err := gridmap.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("gridutil: reading map %s: %w", path, err)
	}
	return descs, nil
}

// WriteMap writes descs as a map file to path, which is either a local
// file or a blob path as accepted by IsBlob.
func WriteMap(ctx context.Context, path string, descs ...*gridmap.Description) error {
	var w io.WriteCloser
	if IsBlob(path) {
		bucket, key, err := openObject(ctx, path)
		if err != nil {
			return fmt.Errorf("gridutil: writing map %s: %v", path, err)
		}
		bw, err := bucket.NewWriter(ctx, key, nil)
		if err != nil {
			return fmt.Errorf("gridutil: writing map %s: %v", path, err)
		}
		w = bw
	} else {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("gridutil: writing map: %v", err)
		}
		w = f
	}
	if err := gridmap.Encode(w, descs...); err != nil {
		w.Close()
		return fmt.Errorf("gridutil: writing map %s: %v", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gridutil: writing map %s: %v", path, err)
	}
	return nil
}
