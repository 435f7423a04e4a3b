package cmd

import (
	"os"
	"path/filepath"

	"github.com/achilleasa/go-bvhquery/config"
	"github.com/achilleasa/go-bvhquery/geom"
	"github.com/achilleasa/go-bvhquery/meshio"
	"github.com/achilleasa/go-bvhquery/tetramarch"
)

func readOBJFile(path string) ([]geom.Triangle, config.MeshSource, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, config.MeshSource{}, err
	}
	defer fh.Close()

	triangles, err := meshio.ReadOBJ(fh)
	if err != nil {
		return nil, config.MeshSource{}, err
	}
	src := config.NewMeshSource(filepath.Base(path), path)
	logger.Debugf(`loaded mesh "%s" (%d triangles) from %s`, src.Name, len(triangles), src.Path)
	return triangles, src, nil
}

func readTetraMeshFile(path string) (tetramarch.Mesh, config.MeshSource, error) {
	fh, err := os.Open(path)
	if err != nil {
		return tetramarch.Mesh{}, config.MeshSource{}, err
	}
	defer fh.Close()

	mesh, err := meshio.ReadTetraMesh(fh)
	if err != nil {
		return tetramarch.Mesh{}, config.MeshSource{}, err
	}
	src := config.NewMeshSource(filepath.Base(path), path)
	logger.Debugf(`loaded tetra mesh "%s" (%d tetras) from %s`, src.Name, len(mesh.Tetras), src.Path)
	return mesh, src, nil
}
